package filelog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anyproto/swig-sanity/app"
)

func TestFileLogger(t *testing.T) {
	t.Run("init creates folder", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		fl := New(dir)
		require.NoError(t, fl.Init(&app.App{}))
		assert.Equal(t, CName, fl.Name())
		assert.FileExists(t, fl.Path())
		require.NoError(t, fl.Close(context.Background()))
	})

	t.Run("empty path", func(t *testing.T) {
		err := New("").Init(&app.App{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "folderPath cannot be empty")
	})

	t.Run("DoLog appends", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 2; i++ {
			fl := New(dir)
			require.NoError(t, fl.Init(&app.App{}))
			require.NoError(t, fl.Run(context.Background()))
			fl.DoLog(func(logger *zap.Logger) {
				logger.Info("fixture written", zap.String("fixture", "create"))
			})
			require.NoError(t, fl.Close(context.Background()))
		}

		content, err := os.ReadFile(filepath.Join(dir, journalFile))
		require.NoError(t, err)
		assert.Equal(t, 2, countLines(content))
		assert.Contains(t, string(content), `"fixture":"create"`)
		assert.Contains(t, string(content), `"logger":"journal"`)
	})

	t.Run("closed logger drops entries", func(t *testing.T) {
		fl := New(t.TempDir())
		require.NoError(t, fl.Init(&app.App{}))
		require.NoError(t, fl.Close(context.Background()))
		fl.DoLog(func(logger *zap.Logger) {
			t.Fatal("DoLog must not call fn after close")
		})
	})
}

func countLines(b []byte) (n int) {
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return
}

func TestNoOpFileLogger(t *testing.T) {
	fl := NewNoOp()
	require.NoError(t, fl.Init(&app.App{}))
	assert.Equal(t, CName, fl.Name())
	require.NoError(t, fl.Run(context.Background()))
	fl.DoLog(func(logger *zap.Logger) {
		t.Fatal("DoLog should not call the function in NoOp implementation")
	})
	assert.Empty(t, fl.Path())
	require.NoError(t, fl.Close(context.Background()))
}
