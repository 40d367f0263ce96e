// Package config holds the settings applied when a terminal session starts.
//
// Settings come from a TOML or YAML file, then environment overrides:
//
//	cfg, err := config.LoadFile(config.DefaultPath())
//	config.ApplyEnv(&cfg, config.EnvPrefix)
//
// Watch reloads a file when it changes on disk.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/ncursesw/mouse"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a value outside its allowed range.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnsupportedFormat indicates a file extension with no parser.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config is the complete session configuration.
type Config struct {
	Mouse  Mouse  `toml:"mouse" yaml:"mouse"`
	Cursor Cursor `toml:"cursor" yaml:"cursor"`
	Log    Log    `toml:"log" yaml:"log"`
}

// Mouse configures mouse reporting.
type Mouse struct {
	// IntervalMS is the press/release window for clicks. Zero disables
	// click resolution.
	IntervalMS int `toml:"interval_ms" yaml:"interval_ms"`
	// Mask lists the event classes enabled at start, by name:
	// "all-mouse-events" or "report-mouse-position".
	Mask []string `toml:"mask" yaml:"mask"`
}

// Cursor configures the terminal cursor.
type Cursor struct {
	// Visibility is 0 (hidden), 1 (normal) or 2 (very visible).
	Visibility int `toml:"visibility" yaml:"visibility"`
}

// Log configures session logging.
type Log struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mouse: Mouse{
			IntervalMS: 166,
		},
		Cursor: Cursor{
			Visibility: 1,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Interval returns the mouse interval as a duration.
func (m Mouse) Interval() time.Duration {
	return time.Duration(m.IntervalMS) * time.Millisecond
}

// Requests resolves Mask into mouse requests.
func (m Mouse) Requests() ([]mouse.Mask, error) {
	out := make([]mouse.Mask, 0, len(m.Mask))
	for _, name := range m.Mask {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case mouse.AllMouseEvents.String(), "all":
			out = append(out, mouse.AllMouseEvents)
		case mouse.ReportMousePosition.String(), "position":
			out = append(out, mouse.ReportMousePosition)
		default:
			return nil, fmt.Errorf("%w: unknown mouse mask %q", ErrValidationFailed, name)
		}
	}
	return out, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Mouse.IntervalMS < 0 {
		return fmt.Errorf("%w: mouse.interval_ms must not be negative", ErrValidationFailed)
	}
	if c.Cursor.Visibility < 0 || c.Cursor.Visibility > 2 {
		return fmt.Errorf("%w: cursor.visibility must be 0, 1 or 2", ErrValidationFailed)
	}
	if _, err := c.Mouse.Requests(); err != nil {
		return err
	}
	return nil
}
