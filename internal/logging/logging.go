// Package logging builds the diagnostic logger.
// User-facing command output does not go through this logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/conn-castle/sitemaint/internal/config"
	"github.com/conn-castle/sitemaint/internal/messages"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to stderr and, when cfg.File is set, to a rotated log file.
// verbose forces debug level. The returned closer releases the log file.
func New(cfg config.LogConfig, verbose bool, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(parseLevel(cfg.Level, verbose))

	if strings.TrimSpace(cfg.File) == "" {
		logger.SetOutput(stderr)
		return logger, nopCloser{}, nil
	}

	path, err := homedir.Expand(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.ConfigLogFileOpenFailedFmt, cfg.File, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf(messages.ConfigLogFileOpenFailedFmt, path, err)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	logger.SetOutput(io.MultiWriter(stderr, rotator))
	return logger, rotator, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func parseLevel(level string, verbose bool) logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.WarnLevel
	}
	return parsed
}
