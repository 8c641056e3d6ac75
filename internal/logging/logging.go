// Package logging configures the application log file
package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
)

// Init routes slog output to a rotating log file. Verbose enables debug
// records.
func Init(pathToLogFile string, verbose bool) {
	w := &lumberjack.Logger{
		Filename:   pathToLogFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	if os.Getenv("TIMEKEEPER_ENV") == "testing" {
		level = slog.LevelError
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	)
}
