package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// NewLogger builds the application logger: colored text in development,
// JSON otherwise, plus a rotated copy on disk when LogFile is set.
func NewLogger(c *App) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if c.Development {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if c.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      log.GetLevel(),
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to create log file hook: %w", err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
