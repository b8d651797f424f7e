// Package fixture builds the swig golden fixtures and keeps them on disk.
package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/anyproto/swig-sanity/app"
	"github.com/anyproto/swig-sanity/app/filelog"
	"github.com/anyproto/swig-sanity/app/logger"
	"github.com/anyproto/swig-sanity/metric"
	"github.com/anyproto/swig-sanity/util/crypto"
)

const CName = "swig.fixture"

var log = logger.NewNamed(CName)

var (
	ErrUnknownFixture  = errors.New("unknown fixture")
	ErrFixtureMismatch = errors.New("fixture mismatch")
)

type Config struct {
	OutputDir string `yaml:"outputDir"`
	// Manifest enables manifest.yaml next to the fixtures
	Manifest bool `yaml:"manifest"`
	// Mnemonic replaces the repeated-byte authority keys with derived ones
	Mnemonic string   `yaml:"mnemonic"`
	Only     []string `yaml:"only"`
	// Journal appends every written and verified fixture to journal.log in OutputDir
	Journal bool `yaml:"journal"`
}

type configSource interface {
	GetFixture() Config
}

func New() Service {
	return new(service)
}

// NewWithSink returns a service storing fixtures in sink instead of the output dir
func NewWithSink(sink Sink) Service {
	return &service{sink: sink}
}

type Service interface {
	// Builders returns the enabled builders in generation order
	Builders() []Builder
	// Build runs one builder by name
	Build(name string) ([]byte, error)
	// Generate writes every fixture, stopping at the first error
	Generate(ctx context.Context) (Manifest, error)
	// Verify rebuilds every fixture and compares it with the stored one
	Verify(ctx context.Context) error
	app.Component
}

type service struct {
	conf     Config
	sink     Sink
	writer   *Writer
	metric   metric.Metric
	journal  filelog.FileLogger
	builders []Builder
	// names of every known fixture, including ones excluded by Only
	order []string
}

func (s *service) Init(a *app.App) (err error) {
	s.conf = a.MustComponent("config").(configSource).GetFixture()
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		s.metric = m
	}
	if j, ok := a.Component(filelog.CName).(filelog.FileLogger); ok {
		s.journal = j
	} else {
		s.journal = filelog.NewNoOp()
	}
	if s.sink == nil {
		s.sink = NewDirSink(s.conf.OutputDir)
	}
	s.writer = NewWriter(s.sink)

	keys := KeySource(RepeatedKeys)
	if s.conf.Mnemonic != "" {
		if keys, err = MnemonicKeys(crypto.Mnemonic(s.conf.Mnemonic)); err != nil {
			return
		}
	}
	all := Builders(keys)
	s.order = make([]string, 0, len(all))
	for _, b := range all {
		s.order = append(s.order, b.Name)
	}
	s.builders, err = selectBuilders(all, s.conf.Only)
	return
}

func (s *service) Name() (name string) {
	return CName
}

func selectBuilders(all []Builder, only []string) ([]Builder, error) {
	if len(only) == 0 {
		return all, nil
	}
	for _, name := range only {
		if !slices.ContainsFunc(all, func(b Builder) bool { return b.Name == name }) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFixture, name)
		}
	}
	return slices.DeleteFunc(all, func(b Builder) bool {
		return !slices.Contains(only, b.Name)
	}), nil
}

func (s *service) Builders() []Builder {
	return slices.Clone(s.builders)
}

func (s *service) Build(name string) ([]byte, error) {
	for _, b := range s.builders {
		if b.Name == name {
			return b.Build()
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFixture, name)
}

func (s *service) Generate(ctx context.Context) (m Manifest, err error) {
	start := time.Now()
	for _, b := range s.builders {
		if err = s.generateOne(ctx, b, &m); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info("generate interrupted", metric.Fixture(b.Name), zap.Error(err))
				return m, err
			}
			if s.metric != nil {
				s.metric.FixtureFailed(b.Name)
			}
			s.journal.DoLog(func(l *zap.Logger) {
				l.Warn("fixture failed", metric.Fixture(b.Name), zap.Error(err))
			})
			return m, err
		}
	}
	if s.conf.Manifest {
		if err = s.writeManifest(m); err != nil {
			return m, err
		}
	}
	if s.metric != nil {
		s.metric.RequestLog(ctx, "generate", zap.Int("fixtures", len(m.Fixtures)), metric.TotalDur(time.Since(start)))
	}
	return m, nil
}

// writeManifest stores the manifest of the whole fixture set;
// a run limited by Only updates its entries in the stored manifest
func (s *service) writeManifest(m Manifest) error {
	if len(s.conf.Only) > 0 {
		data, err := s.sink.ReadFile(ManifestFile)
		switch {
		case err == nil:
			prev, perr := ParseManifest(data)
			if perr != nil {
				return fmt.Errorf("parse manifest: %w", perr)
			}
			m = prev.Merge(m, s.order)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read manifest: %w", err)
		}
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err = s.sink.WriteFile(ManifestFile, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (s *service) generateOne(ctx context.Context, b Builder, m *Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	data, err := b.Build()
	if err != nil {
		return fmt.Errorf("build fixture %s: %w", b.Name, err)
	}
	if err = s.writer.Write(ctx, b.Name, data); err != nil {
		return err
	}
	m.Add(b.Name, data)
	if s.metric != nil {
		s.metric.ObserveFixture(b.Name, len(data), time.Since(start))
	}
	log.Debug("fixture written", metric.Fixture(b.Name), metric.Size(len(data)))
	s.journal.DoLog(func(l *zap.Logger) {
		l.Info("fixture written", metric.Fixture(b.Name), metric.Size(len(data)), metric.Digest(Digest(data)))
	})
	return nil
}

func (s *service) Verify(ctx context.Context) error {
	var manifest *Manifest
	if s.conf.Manifest {
		data, err := s.sink.ReadFile(ManifestFile)
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		m, err := ParseManifest(data)
		if err != nil {
			return fmt.Errorf("parse manifest: %w", err)
		}
		manifest = &m
	}
	for _, b := range s.builders {
		if err := ctx.Err(); err != nil {
			return err
		}
		want, err := b.Build()
		if err != nil {
			return fmt.Errorf("build fixture %s: %w", b.Name, err)
		}
		got, err := s.sink.ReadFile(FileName(b.Name))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", b.Name, err)
		}
		if !bytes.Equal(want, got) {
			return fmt.Errorf("%w: %s: stored %d bytes, built %d bytes", ErrFixtureMismatch, b.Name, len(got), len(want))
		}
		if manifest != nil {
			e, ok := manifest.Entry(b.Name)
			if !ok || e.Blake3 != Digest(want) || e.Size != len(want) {
				return fmt.Errorf("%w: %s: manifest entry is stale", ErrFixtureMismatch, b.Name)
			}
		}
		log.Debug("fixture verified", metric.Fixture(b.Name), metric.Digest(Digest(want)))
		s.journal.DoLog(func(l *zap.Logger) {
			l.Info("fixture verified", metric.Fixture(b.Name), metric.Digest(Digest(want)))
		})
	}
	return nil
}
