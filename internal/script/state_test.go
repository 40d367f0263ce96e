package script

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	lua "github.com/yuin/gopher-lua"
)

func TestStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	code := `assert(dofile == nil and loadfile == nil and load == nil)
assert(require == nil and io == nil and os == nil and debug == nil)
assert(string.upper("a") == "A" and math.max(1, 2) == 2)
t = {}
table.insert(t, 1)`
	if err := s.DoString(code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
}

func TestStateDoStringError(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(`invalid lua code !!!`)
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("DoString() error = %v, want *Error", err)
	}
	if se.Cause != nil {
		t.Errorf("Cause = %v, want nil for a syntax error", se.Cause)
	}
	if se.Chunk != "<string>" {
		t.Errorf("Chunk = %q", se.Chunk)
	}
}

func TestStatePrintLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewState(WithLogger(logrus.NewEntry(logger)))
	defer s.Close()

	if err := s.DoString(`print("value", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("print did not log")
	}
	if entry.Message != "value\t42" {
		t.Errorf("message = %q, want %q", entry.Message, "value\t42")
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want %v", err, ErrStateClosed)
	}
	if v := s.GetGlobal("x"); v != lua.LNil {
		t.Errorf("GetGlobal() after Close = %v, want nil", v)
	}
	if err := s.Bind(nil); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Bind() after Close error = %v", err)
	}
}

func TestStateUnbound(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`x = 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := s.GetGlobal("x"); v != lua.LNumber(1) {
		t.Errorf("x = %v, want 1", v)
	}
	if v := s.GetGlobal("stdscr"); v != lua.LNil {
		t.Errorf("stdscr before Bind = %v, want nil", v)
	}
}
