//go:generate mockgen -destination mock_fixture/mock_fixture.go github.com/anyproto/swig-sanity/fixture Sink
package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink stores fixture files by name
type Sink interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
}

// NewDirSink stores files under dir, creating it on first write
func NewDirSink(dir string) Sink {
	return dirSink{dir: dir}
}

type dirSink struct {
	dir string
}

func (d dirSink) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.dir, name), data, 0644)
}

func (d dirSink) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.dir, name))
}

// FileName is the file a fixture is stored in
func FileName(name string) string {
	return name + ".bin"
}

// Writer writes fixture bytes to a sink, replacing previous content
type Writer struct {
	sink Sink
}

func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink}
}

func (w *Writer) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.sink.WriteFile(FileName(name), data); err != nil {
		return fmt.Errorf("write fixture %s: %w", name, err)
	}
	return nil
}
