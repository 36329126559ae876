// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TimestampFormat is the layout of log timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Config configures the logger.
type Config struct {
	// Level is a logrus level name; invalid names fall back to info.
	Level string
	// Format is "text" or "json".
	Format string
	// Console writes to stdout. It is implied when File is empty.
	Console bool
	// File enables size based rotation into this path.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a logger for config. The returned closer releases the log
// file, if any.
func New(config Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: TimestampFormat})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: TimestampFormat,
			FullTimestamp:   true,
		})
	default:
		return nil, nil, fmt.Errorf("unsupported log format %q (supported: text, json)", config.Format)
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if config.Console || config.File == "" {
		writers = append(writers, os.Stdout)
	}
	if config.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   config.Compress,
			LocalTime:  true,
		}
		writers = append(writers, rotating)
		closer = rotating
	}
	logger.SetOutput(io.MultiWriter(writers...))

	if err != nil && config.Level != "" {
		logger.WithField("level", config.Level).Warn("invalid log level, using info")
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
