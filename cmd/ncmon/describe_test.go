package main

import (
	"strings"
	"testing"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/config"
	"github.com/dshills/ncursesw/mouse"
)

func TestDescribeKeys(t *testing.T) {
	tests := []struct {
		key  ncursesw.Key
		want string
	}{
		{ncursesw.KeyUp, "key up"},
		{ncursesw.KeyResize, "key resize"},
		{ncursesw.KeyF(3), "key f3"},
		{'\t', "key tab"},
		{0x1b, "key escape"},
		{0x01, "key ^A"},
		{0x7f, "key ^?"},
		{'x', "key 'x'"},
	}

	for _, tt := range tests {
		got := describe(ncursesw.Event{Key: tt.key})
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("describe(%#o) = %q, want prefix %q", tt.key, got, tt.want)
		}
	}
}

func TestDescribeMouse(t *testing.T) {
	m := &mouse.Event{
		States: []mouse.ButtonState{
			{Button: mouse.One, Event: mouse.Pressed},
			{Button: mouse.Three, Event: mouse.Released},
		},
		Modifiers: mouse.ModCtrl,
		Raw:       0x402,
	}

	got := describe(ncursesw.Event{Key: ncursesw.KeyMouse, Mouse: m})
	for _, part := range []string{"mouse (0,0,0)", "button1 pressed", "button3 released", "[ctrl]", "raw=0x402"} {
		if !strings.Contains(got, part) {
			t.Errorf("describe() = %q, missing %q", got, part)
		}
	}

	moved := describe(ncursesw.Event{Key: ncursesw.KeyMouse, Mouse: &mouse.Event{Position: true}})
	if !strings.Contains(moved, "move") {
		t.Errorf("describe(motion) = %q, want a move report", moved)
	}
}

func TestMonitorHistoryBounded(t *testing.T) {
	m := &monitor{}
	for i := 0; i < historySize+10; i++ {
		m.record("event")
	}
	if len(m.history) != historySize {
		t.Errorf("history length = %d, want %d", len(m.history), historySize)
	}
	if m.count != historySize+10 {
		t.Errorf("count = %d, want %d", m.count, historySize+10)
	}
}

func TestOptionsLoadConfig(t *testing.T) {
	t.Setenv(config.EnvPrefix+"CURSOR_VISIBILITY", "2")

	opts := &options{
		configPath: t.TempDir() + "/missing.toml",
		logLevel:   "debug",
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Cursor.Visibility != 2 {
		t.Errorf("Cursor.Visibility = %d, want 2 from the environment", cfg.Cursor.Visibility)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want the flag value", cfg.Log.Level)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "ncmon dev") {
		t.Errorf("output = %q", out.String())
	}
}
