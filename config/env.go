package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the default prefix for environment overrides.
const EnvPrefix = "NCURSESW_"

// ApplyEnv overrides cfg from prefixed environment variables:
//
//	NCURSESW_MOUSE_INTERVAL_MS
//	NCURSESW_MOUSE_MASK          (comma separated)
//	NCURSESW_CURSOR_VISIBILITY
//	NCURSESW_LOG_LEVEL
//	NCURSESW_LOG_FILE
//
// Empty values count as set.
func ApplyEnv(cfg *Config, prefix string) error {
	lookup := func(name string) (string, bool) {
		return os.LookupEnv(prefix + name)
	}

	if v, ok := lookup("MOUSE_INTERVAL_MS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sMOUSE_INTERVAL_MS: %w", prefix, err)
		}
		cfg.Mouse.IntervalMS = n
	}
	if v, ok := lookup("MOUSE_MASK"); ok {
		cfg.Mouse.Mask = nil
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Mouse.Mask = append(cfg.Mouse.Mask, part)
			}
		}
	}
	if v, ok := lookup("CURSOR_VISIBILITY"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sCURSOR_VISIBILITY: %w", prefix, err)
		}
		cfg.Cursor.Visibility = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return cfg.Validate()
}
