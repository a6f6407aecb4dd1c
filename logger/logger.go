// Package logger provides the project wide logrus logger.
package logger

import (
	"os"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
)

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the shared logger, creating it on first use.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetOutput(os.Stderr)
		projectLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
		projectLogger.SetLevel(logrus.InfoLevel)
	})
	return projectLogger
}

// SetLevel parses a level name (debug, info, warn, error) and applies it to the project logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	GetProjectLogger().SetLevel(lvl)
	return nil
}
