package logger_test

import (
	"errors"

	"github.com/wonny/gradeview/pkg/config"
	"github.com/wonny/gradeview/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Gradebook loaded")
	log.Warnf("Skipped %d malformed lines", 2)
}

// Example_withError demonstrates error logging with context fields
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("permission denied")
	log.WithError(err).
		WithField("file", "data/submissions/week1.txt").
		Error("Failed to read submissions file")
}
