package utils

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogging Configure the global logrus logger. Debug mode forces debug level.
func SetupLogging(config LogConfig, debugMode bool) error {
	level, err := log.ParseLevel(config.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if debugMode {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	switch config.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", config.Format)
	}
	return nil
}
