// Package main is the entry point for docsmith, a documentation generator
// for Swift projects.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func main() {
	logger = setupLogger()
	Execute()
}

// setupLogger builds the process logger from DOCSMITH_LOG_LEVEL and
// DOCSMITH_LOG_FORMAT. Console output is the default for interactive use;
// set DOCSMITH_LOG_FORMAT=json for machine-readable logs.
func setupLogger() zerolog.Logger {
	levelStr := os.Getenv("DOCSMITH_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("DOCSMITH_LOG_FORMAT") == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
