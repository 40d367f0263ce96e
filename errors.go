package ncursesw

import (
	"errors"
	"fmt"

	"github.com/dshills/ncursesw/internal/native"
)

// Session errors.
var (
	// ErrAlreadyActive indicates a session is already running in this process.
	ErrAlreadyActive = errors.New("ncursesw: session already active")

	// ErrNotRealized indicates a ripoff line has no window yet, or no longer.
	ErrNotRealized = errors.New("ncursesw: ripoff line not realized")
)

// Causes carried by *CursesError.
var (
	// ErrDisposed indicates use of a closed wrapper or a released handle.
	ErrDisposed = errors.New("handle disposed")

	// ErrChildrenAlive indicates an owning close while derived windows remain.
	ErrChildrenAlive = errors.New("derived windows still open")

	// ErrSessionScoped indicates an attempt to close a session-owned object.
	ErrSessionScoped = errors.New("owned by the session")

	// ErrPrimitive marks any other failure of the terminal library.
	ErrPrimitive = errors.New("terminal primitive failed")

	// ErrOutOfBounds indicates a position or content outside the window.
	ErrOutOfBounds = native.ErrOutOfBounds

	// ErrInterrupted indicates a blocked read was woken.
	ErrInterrupted = native.ErrInterrupted
)

// Ripoff registration causes carried by *RegistrationError.
var (
	ErrDuplicateRipoff = errors.New("a line with this orientation is already registered")
	ErrSessionStarted  = errors.New("session already started")
)

// InitError reports a failure to acquire the terminal.
type InitError struct {
	Stage string // e.g. "driver", "ripoff", "config"
	Err   error
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("ncursesw: init %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("ncursesw: init: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CursesError reports a failed operation on a window, panel or screen.
type CursesError struct {
	Op  string // primitive name, e.g. "mvaddstr"
	Err error
}

func newCursesError(op string, err error) *CursesError {
	return &CursesError{Op: op, Err: classify(err)}
}

// classify maps driver failures onto the causes callers test for.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, native.ErrOutOfBounds),
		errors.Is(err, native.ErrInterrupted),
		errors.Is(err, ErrDisposed),
		errors.Is(err, ErrChildrenAlive),
		errors.Is(err, ErrSessionScoped):
		return err
	case errors.Is(err, native.ErrUnknownHandle):
		return fmt.Errorf("%w: %w", ErrDisposed, err)
	default:
		return fmt.Errorf("%w: %w", ErrPrimitive, err)
	}
}

func (e *CursesError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("ncursesw: %s: %v", e.Op, e.Err)
}

func (e *CursesError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the wrapper instance and the wrapped cause.
func (e *CursesError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*CursesError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// RegistrationError reports a rejected ripoff line.
type RegistrationError struct {
	Orientation Orientation
	Err         error
}

func (e *RegistrationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("ncursesw: ripoff %s: %v", e.Orientation, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AbnormalTermination reports a panic inside a session body. Message is
// set when the panic value was a string or an error.
type AbnormalTermination struct {
	Message string
	HasMsg  bool
	Value   any
	Stack   string
}

func (e *AbnormalTermination) Error() string {
	if e == nil {
		return ""
	}
	if e.HasMsg {
		return "ncursesw: session body panicked: " + e.Message
	}
	return "ncursesw: session body panicked"
}

// Unwrap exposes the panic value when it was an error.
func (e *AbnormalTermination) Unwrap() error {
	if e == nil {
		return nil
	}
	err, _ := e.Value.(error)
	return err
}

func newAbnormalTermination(v any, stack string) *AbnormalTermination {
	e := &AbnormalTermination{Value: v, Stack: stack}
	switch m := v.(type) {
	case string:
		e.Message, e.HasMsg = m, true
	case error:
		e.Message, e.HasMsg = m.Error(), true
	case fmt.Stringer:
		e.Message, e.HasMsg = m.String(), true
	}
	return e
}
