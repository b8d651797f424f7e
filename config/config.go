package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/anyproto/swig-sanity/app"
	"github.com/anyproto/swig-sanity/app/logger"
	"github.com/anyproto/swig-sanity/fixture"
	"github.com/anyproto/swig-sanity/metric"
)

const CName = "config"

const DefaultOutputDir = "data"

var log = logger.NewNamed(CName)

// Default returns the config used when no file is given
func Default() *Config {
	return &Config{
		Log: logger.Config{
			DefaultLevel: "info",
		},
		Fixture: fixture.Config{
			OutputDir: DefaultOutputDir,
			Manifest:  true,
		},
	}
}

// NewFromFile reads yaml config on top of Default; a missing file yields the defaults
func NewFromFile(path string) (c *Config, err error) {
	c = Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.Fixture.OutputDir == "" {
		c.Fixture.OutputDir = DefaultOutputDir
	}
	return c, nil
}

type Config struct {
	Log     logger.Config  `yaml:"log"`
	Fixture fixture.Config `yaml:"fixture"`
	Metric  metric.Config  `yaml:"metric"`
}

func (c *Config) Init(a *app.App) (err error) {
	log.Debug("config loaded",
		zap.String("outputDir", c.Fixture.OutputDir),
		zap.Bool("manifest", c.Fixture.Manifest),
		zap.Bool("mnemonic", c.Fixture.Mnemonic != ""),
		zap.Strings("only", c.Fixture.Only),
		zap.String("metricTextfile", c.Metric.Textfile),
	)
	return
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetFixture() fixture.Config {
	return c.Fixture
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}
