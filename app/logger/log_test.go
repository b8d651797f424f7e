package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_getLevel(t *testing.T) {
	SetNamedLevels([]NamedLevel{
		{Name: "fixture", Level: "debug"},
		{Name: "fixture*", Level: "info"},
		{Name: "fixture.writer", Level: "warn"},
		{Name: "*", Level: "fatal"},
	})
	defer SetNamedLevels(nil)

	tests := []struct {
		name string
		want zapcore.Level
	}{
		{name: "fixture", want: zap.DebugLevel},
		{name: "fixture.builder", want: zap.InfoLevel},
		// the glob declared earlier wins over the exact name
		{name: "fixture.writer", want: zap.InfoLevel},
		{name: "random", want: zap.FatalLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getLevel(tt.name))
		})
	}
}

func TestLevelsFromStr(t *testing.T) {
	levels := LevelsFromStr("fixture=DEBUG; metric*=warn;error;bad=nope;")
	assert.Equal(t, []NamedLevel{
		{Name: "fixture", Level: "DEBUG"},
		{Name: "metric*", Level: "warn"},
		{Name: "*", Level: "error"},
	}, levels)
}

func TestCtxLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := CtxLogger{Logger: zap.New(core), name: "test"}

	ctx := CtxWithFields(context.Background(), zap.String("fixture", "swig"))
	ctx = CtxWithFields(ctx, zap.Int("size", 10))
	l.InfoCtx(ctx, "written", zap.String("path", "data/swig.bin"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "swig", fields["fixture"])
		assert.Equal(t, int64(10), fields["size"])
		assert.Equal(t, "data/swig.bin", fields["path"])
	}
}

func TestConfig_ZapConfig(t *testing.T) {
	conf := Config{
		DefaultLevel: "warn",
		Levels:       []NamedLevel{{Name: "fixture", Level: "debug"}},
		Format:       JSONOutput,
	}.ZapConfig()
	assert.Equal(t, "json", conf.Encoding)
	assert.Equal(t, zap.DebugLevel, conf.Level.Level())
	assert.Equal(t, []string{"stderr"}, conf.OutputPaths)
}
