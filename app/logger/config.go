package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogFormat int

const (
	ColorizedOutput LogFormat = iota
	PlaintextOutput
	JSONOutput
)

type NamedLevel struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

type Config struct {
	Production   bool         `yaml:"production"`
	DefaultLevel string       `yaml:"defaultLevel"`
	Levels       []NamedLevel `yaml:"levels"` // first match will be used
	Format       LogFormat    `yaml:"format"`
}

// ZapConfig builds the zap configuration described by l
// all output goes to stderr, stdout is left to the command output
func (l Config) ZapConfig() zap.Config {
	var conf zap.Config
	if l.Production {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
	}
	enc := conf.EncoderConfig
	switch l.Format {
	case PlaintextOutput:
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		conf.Encoding = "console"
	case JSONOutput:
		enc.MessageKey = "msg"
		enc.TimeKey = "ts"
		enc.LevelKey = "level"
		enc.NameKey = "logger"
		enc.CallerKey = "caller"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		conf.Encoding = "json"
	default:
		conf.Encoding = "console"
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	conf.EncoderConfig = enc
	conf.OutputPaths = []string{"stderr"}

	if lvl, err := zap.ParseAtomicLevel(l.DefaultLevel); err == nil {
		conf.Level = lvl
	}
	// the root level must not filter out messages a named level allows
	for _, v := range l.Levels {
		if lvl, err := zapcore.ParseLevel(v.Level); err == nil && lvl < conf.Level.Level() {
			conf.Level.SetLevel(lvl)
		}
	}
	return conf
}

// ApplyGlobal builds the logger and installs it as the process default
func (l Config) ApplyGlobal() error {
	lg, err := l.ZapConfig().Build()
	if err != nil {
		return err
	}
	SetDefault(lg)
	SetNamedLevels(l.Levels)
	return nil
}

// LevelsFromStr parses a string of the form "name1=DEBUG;prefix*=WARN;*=ERROR" into a slice of NamedLevel
// a part without "=" applies to every logger
func LevelsFromStr(s string) (levels []NamedLevel) {
	for _, kv := range strings.Split(s, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, found := strings.Cut(kv, "=")
		if !found {
			key, value = "*", kv
		}
		if _, err := zapcore.ParseLevel(value); err != nil {
			continue
		}
		levels = append(levels, NamedLevel{Name: strings.TrimSpace(key), Level: strings.TrimSpace(value)})
	}
	return levels
}
