package metric

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/anyproto/swig-sanity/app"
	"github.com/anyproto/swig-sanity/app/logger"
)

const CName = "common.metric"

var log = logger.NewNamed(CName)

type Config struct {
	// Textfile is a node-exporter textfile collector path written on close
	Textfile string `yaml:"textfile"`
}

type configSource interface {
	GetMetric() Config
}

func New() Metric {
	return new(metric)
}

type Metric interface {
	Registry() *prometheus.Registry
	// ObserveFixture records a fixture written successfully
	ObserveFixture(name string, size int, dur time.Duration)
	// FixtureFailed records a fixture that could not be built or written
	FixtureFailed(name string)
	RequestLog(ctx context.Context, msg string, fields ...zap.Field)
	app.ComponentRunnable
}

type metric struct {
	registry *prometheus.Registry
	fixtures *fixtureMetrics
	runLog   logger.CtxLogger
	config   Config
}

func (m *metric) Init(a *app.App) (err error) {
	m.registry = prometheus.NewRegistry()
	m.config = a.MustComponent("config").(configSource).GetMetric()
	m.runLog = logger.NewNamed("runLog")
	m.fixtures = newFixtureMetrics()
	return m.registry.Register(m.fixtures)
}

func (m *metric) Name() string {
	return CName
}

func (m *metric) Run(ctx context.Context) (err error) {
	if err = m.registry.Register(collectors.NewBuildInfoCollector()); err != nil {
		return err
	}
	return m.registry.Register(newVersionsCollector())
}

func (m *metric) Registry() *prometheus.Registry {
	return m.registry
}

func (m *metric) ObserveFixture(name string, size int, dur time.Duration) {
	if m == nil || m.fixtures == nil {
		return
	}
	m.fixtures.written.WithLabelValues(name).Inc()
	m.fixtures.bytes.WithLabelValues(name).Add(float64(size))
	m.fixtures.duration.WithLabelValues(name).Observe(dur.Seconds())
}

func (m *metric) FixtureFailed(name string) {
	if m == nil || m.fixtures == nil {
		return
	}
	m.fixtures.failures.WithLabelValues(name).Inc()
}

func (m *metric) Close(ctx context.Context) (err error) {
	if m.config.Textfile == "" {
		return
	}
	if err = prometheus.WriteToTextfile(m.config.Textfile, m.registry); err != nil {
		return err
	}
	log.Debug("metrics written", zap.String("path", m.config.Textfile))
	return
}
