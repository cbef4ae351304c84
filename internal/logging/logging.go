// Package logging sets up file logging for the dashboard. The terminal is
// owned by the UI, so log output never goes to stdout or stderr.
package logging

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup returns a JSON logger writing to filename and routes the Bubble Tea
// and stdlib loggers to the same file. With an empty filename the returned
// logger discards everything.
func Setup(filename string, verbose bool) (logger *zap.Logger, cleanup func(), err error) {
	if filename == "" {
		return zap.NewNop(), func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	// Bubble Tea logger; also points the stdlib log package at the file
	tf, err := tea.LogToFile(filename, "dash")
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open tea log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		level,
	)
	logger = zap.New(core, zap.AddCaller())

	cleanup = func() {
		_ = logger.Sync()
		tf.Close()
		f.Close()
	}
	return logger, cleanup, nil
}
