package logger

import (
	"sync"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.Mutex
	logger       *zap.Logger
	loggerConfig zap.Config
	namedLevels  []namedLevel
	namedLoggers = make(map[string]CtxLogger)
)

type namedLevel struct {
	name  string
	glob  glob.Glob
	level zapcore.Level
}

func init() {
	loggerConfig = zap.NewDevelopmentConfig()
	loggerConfig.OutputPaths = []string{"stderr"}
	logger, _ = loggerConfig.Build()
}

// SetDefault replaces the default logger and rebinds all named loggers to it
func SetDefault(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	*logger = *l
	rebindNamed()
}

// SetNamedLevels sets the levels for named loggers
// names can be glob patterns, like "fixture*"; the first match wins
func SetNamedLevels(nls []NamedLevel) {
	mu.Lock()
	defer mu.Unlock()
	namedLevels = namedLevels[:0]
	for _, nl := range nls {
		lvl, err := zapcore.ParseLevel(nl.Level)
		if err != nil {
			continue
		}
		g, err := glob.Compile(nl.Name)
		if err != nil {
			continue
		}
		namedLevels = append(namedLevels, namedLevel{name: nl.Name, glob: g, level: lvl})
	}
	rebindNamed()
}

func rebindNamed() {
	for name, nl := range namedLoggers {
		l := zap.New(logger.Core()).Named(name).WithOptions(zap.IncreaseLevel(getLevel(name)))
		*(nl.Logger) = *l
	}
}

func Default() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// getLevel returns the level for the given name
// exact names and glob patterns are checked in declaration order
func getLevel(name string) zapcore.Level {
	for _, nl := range namedLevels {
		if nl.name == name || nl.glob.Match(name) {
			return nl.level
		}
	}
	return logger.Level()
}

// NewNamed returns the logger registered under name, creating it on first use
func NewNamed(name string, fields ...zap.Field) CtxLogger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := namedLoggers[name]; ok {
		return l
	}

	l := zap.New(logger.Core()).Named(name).WithOptions(
		zap.IncreaseLevel(getLevel(name)),
		zap.Fields(fields...),
	)
	ctxL := CtxLogger{Logger: l, name: name}
	namedLoggers[name] = ctxL
	return ctxL
}
