package util

import (
	"io"
	"os"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/config"
)

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger installs the default logger according to the log flags
func SetupLogger() error {
	logger, err := NewLogger(os.Stderr, config.LogLevel, log.InfoLevel)
	if err != nil {
		return err
	}
	log.ResetDefault(logger)
	return nil
}

// NewLogger creates a logger honoring log-format and log-filter
func NewLogger(w io.Writer, level string, defaultLevel log.Level) (*log.Logger, error) {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			w,
			ParseLogLevel(level, defaultLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			w,
			ParseLogLevel(level, defaultLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	return logger.WithFilter(config.LogFilter)
}
