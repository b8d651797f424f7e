// Package filelog keeps a json journal of fixture runs next to the fixtures.
package filelog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anyproto/swig-sanity/app"
)

const CName = "common.filelog"

const journalFile = "journal.log"

type FileLogger interface {
	app.ComponentRunnable
	// DoLog runs fn with the journal logger; fn is not called when the journal is disabled
	DoLog(fn func(logger *zap.Logger))
	// Path returns the journal file path, empty when disabled
	Path() string
}

type fileLogger struct {
	folderPath string
	logger     *zap.Logger
	logFile    *os.File
	mu         sync.RWMutex
}

func New(folderPath string) FileLogger {
	return &fileLogger{
		folderPath: folderPath,
	}
}

func NewNoOp() FileLogger {
	return &noOpFileLogger{}
}

func (fl *fileLogger) Init(a *app.App) error {
	if fl.folderPath == "" {
		return fmt.Errorf("folderPath cannot be empty")
	}
	if err := os.MkdirAll(fl.folderPath, 0755); err != nil {
		return fmt.Errorf("failed to create journal folder: %w", err)
	}
	logFile, err := os.OpenFile(fl.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	fl.logFile = logFile

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)
	fl.logger = zap.New(core).Named("journal")
	return nil
}

func (fl *fileLogger) Name() string {
	return CName
}

func (fl *fileLogger) Run(ctx context.Context) error {
	return nil
}

func (fl *fileLogger) Close(ctx context.Context) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.logger != nil {
		_ = fl.logger.Sync()
		fl.logger = nil
	}
	if fl.logFile != nil {
		err := fl.logFile.Close()
		fl.logFile = nil
		return err
	}
	return nil
}

func (fl *fileLogger) DoLog(fn func(logger *zap.Logger)) {
	fl.mu.RLock()
	defer fl.mu.RUnlock()
	if fl.logger != nil {
		fn(fl.logger)
	}
}

func (fl *fileLogger) Path() string {
	return filepath.Join(fl.folderPath, journalFile)
}

type noOpFileLogger struct{}

func (n *noOpFileLogger) Init(a *app.App) error {
	return nil
}

func (n *noOpFileLogger) Name() string {
	return CName
}

func (n *noOpFileLogger) Run(ctx context.Context) error {
	return nil
}

func (n *noOpFileLogger) Close(ctx context.Context) error {
	return nil
}

func (n *noOpFileLogger) DoLog(fn func(logger *zap.Logger)) {}

func (n *noOpFileLogger) Path() string {
	return ""
}
