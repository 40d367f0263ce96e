// Package logging sets up structured logging for terminal sessions.
//
// The terminal belongs to the session while it runs, so nothing is written
// to stdout or stderr: output is discarded unless a log file is configured.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Field names shared by every session log line.
const (
	FieldSession   = "session"
	FieldComponent = "component"
)

// ParseLevel parses a level name. Unknown names fall back to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level name, e.g. "debug".
	Level string
	// File receives log output when set. Opened for append.
	File string
	// Output overrides File. Mostly for tests.
	Output io.Writer
}

// New creates a logger for cfg. The returned closer releases the log file
// and is never nil.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetLevel(ParseLevel(cfg.Level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})

	switch {
	case cfg.Output != nil:
		log.SetOutput(cfg.Output)
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nopCloser{}, errors.Wrapf(err, "opening log file %s", cfg.File)
		}
		log.SetOutput(f)
		return log, f, nil
	default:
		log.SetOutput(io.Discard)
	}
	return log, nopCloser{}, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithComponent returns an entry tagged with the component field.
func WithComponent(log logrus.FieldLogger, component string) *logrus.Entry {
	return log.WithField(FieldComponent, component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
