package script

import "errors"

// Errors for script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotBound is returned when running a script before Bind.
	ErrNotBound = errors.New("lua state has no session")
)

// Error is a failed script run. Cause is the Go error raised inside a
// binding, if any.
type Error struct {
	Chunk string
	Cause error
	Lua   error
}

func (e *Error) Error() string {
	return e.Chunk + ": " + e.Lua.Error()
}

// Unwrap returns the binding error when there is one, else the Lua error.
func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Lua
}
