// Package script runs Lua programs as terminal session bodies.
//
// A State exposes the session's standard screen as the global stdscr.
// Windows are userdata with curses-style methods:
//
//	stdscr:mvaddstr(0, 0, "hello")
//	local w = newwin(3, 20, 2, 2)
//	w:box()
//	w:refresh()
//	local key, m = stdscr:getch()
package script

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/internal/logging"
)

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe. The mutex guards calls made
// through State; scripts themselves run on the calling goroutine.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	sess   *ncursesw.Session
	log    *logrus.Entry
	cause  error
	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger sets where print output goes.
func WithLogger(log *logrus.Entry) StateOption {
	return func(s *State) {
		s.log = log
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		log: logrus.NewEntry(logging.Discard()),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	s.L = L

	openSafeLibraries(L)
	installSandbox(L, s.log)
	return s
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.do("<string>", func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.do(path, func() error {
		return s.L.DoFile(path)
	})
}

func (s *State) do(chunk string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.cause = nil

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Chunk: chunk, Lua: fmt.Errorf("lua panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &Error{Chunk: chunk, Cause: s.cause, Lua: err}
	}
	return nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// raise records err as the cause of the running chunk's failure and
// raises it in Lua.
func (s *State) raise(L *lua.LState, err error) int {
	s.cause = err
	L.RaiseError("%s", err.Error())
	return 0
}

// Run executes the file at path as the body of sess. Cancelling ctx
// stops the script and wakes a blocked getch.
func Run(ctx context.Context, sess *ncursesw.Session, path string) error {
	s := NewState(WithLogger(sess.Logger().WithField(logging.FieldComponent, "script")))
	defer s.Close()

	if err := s.Bind(sess); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.L.SetContext(ctx)

	stop := context.AfterFunc(ctx, sess.Interrupt)
	defer stop()

	return s.DoFile(path)
}
