package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// setupLog configures the package logger from the debug and log_file
// settings. Without a log file, warnings and errors go to stderr. The
// returned closer releases the log file.
func setupLog() (func() error, error) {
	level := log.WarnLevel
	if viper.GetBool("debug") {
		level = log.DebugLevel
	}

	path := viper.GetString("log_file")
	if path == "" {
		log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
		}))
		return func() error { return nil }, nil
	}

	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	log.SetDefault(newFileLogger(f, level))
	return f.Close, nil
}

func newFileLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "speechclip",
	})
}
