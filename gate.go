package ncursesw

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/ncursesw/config"
	"github.com/dshills/ncursesw/internal/logging"
	"github.com/dshills/ncursesw/internal/native"
	"github.com/dshills/ncursesw/mouse"
)

// active is set while any session runs in the process.
var active atomic.Bool

// ScreenFactory creates the tcell screen behind a terminal.
type ScreenFactory = native.ScreenFactory

// Gate opens sessions with one configuration and terminal library.
type Gate struct {
	cfg       config.Config
	log       *logrus.Logger
	factory   ScreenFactory
	newDriver func() native.Driver
}

// Option configures a Gate.
type Option func(*Gate)

// WithConfig sets the configuration applied at session start.
func WithConfig(cfg config.Config) Option {
	return func(g *Gate) {
		g.cfg = cfg
	}
}

// WithLogger sets the logger. Without one, sessions log as configured by
// config.Log.
func WithLogger(log *logrus.Logger) Option {
	return func(g *Gate) {
		g.log = log
	}
}

// WithScreenFactory sets how terminals are opened.
func WithScreenFactory(f ScreenFactory) Option {
	return func(g *Gate) {
		g.factory = f
	}
}

// withDriver replaces the terminal library.
func withDriver(fn func() native.Driver) Option {
	return func(g *Gate) {
		g.newDriver = fn
	}
}

// NewGate creates a gate.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		cfg:     config.Default(),
		factory: native.DefaultScreenFactory,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.newDriver == nil {
		factory := g.factory
		g.newDriver = func() native.Driver {
			return native.NewTcellDriver(native.WithScreenFactory(factory))
		}
	}
	return g
}

var defaultGate = NewGate()

// NewRipoffLine reserves the top or bottom row for the next session,
// whichever gate opens it. init runs once when that session starts,
// before its body. At most one line per orientation may be registered in
// the process, and none while a session runs.
func (g *Gate) NewRipoffLine(o Orientation, init RipoffFunc) (*RipoffLine, error) {
	return ripoffs.register(o, init)
}

// Init runs body in a terminal session on the default gate.
func Init[T any](body func(*Session) (T, error)) (T, error) {
	return InitWith(defaultGate, body)
}

// InitWith acquires the terminal, realizes the registered ripoff lines, runs
// body and tears the terminal down exactly once.
//
// A panic in body is returned as *AbnormalTermination. An error from body
// is returned unchanged together with its value. Only one session may run
// per process; others fail with ErrAlreadyActive.
func InitWith[T any](g *Gate, body func(*Session) (T, error)) (result T, err error) {
	if !active.CompareAndSwap(false, true) {
		return result, ErrAlreadyActive
	}

	s, err := g.open()
	if err != nil {
		return result, err
	}
	defer func() {
		if terr := s.teardown(); terr != nil && err == nil {
			err = terr
		}
	}()

	err = s.protect(func() error {
		for _, r := range s.ripoffs {
			if err := r.realize(s); err != nil {
				return &InitError{Stage: "ripoff", Err: err}
			}
		}
		var err error
		result, err = body(s)
		return err
	})
	if _, ok := err.(*AbnormalTermination); ok {
		var zero T
		result = zero
	}
	return result, err
}

// open starts the driver and builds the session. On failure, including a
// panic, nothing is left acquired and the process may start another
// session.
func (g *Gate) open() (s *Session, err error) {
	var (
		drv     native.Driver
		started bool
		closer  io.Closer = io.NopCloser(nil)
	)
	stage := "driver"
	defer func() {
		if r := recover(); r != nil {
			if started {
				_ = drv.End()
			}
			_ = closer.Close()
			s, err = nil, &InitError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			active.Store(false)
		}
	}()

	cfg := g.cfg
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Stage: "config", Err: err}
	}

	log := g.log
	if log == nil {
		var err error
		log, closer, err = logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
		if err != nil {
			return nil, &InitError{Stage: "log", Err: err}
		}
	}

	id := uuid.New()
	entry := logging.WithComponent(log, "session").WithField(logging.FieldSession, id.String())
	lines := ripoffs.take()

	fail := func(stage string, err error) (*Session, error) {
		entry.WithError(err).WithField("stage", stage).Error("session start failed")
		_ = closer.Close()
		return nil, &InitError{Stage: stage, Err: err}
	}

	drv = g.newDriver()
	stage = "ripoff"
	for _, r := range lines {
		if err := drv.RipOffLine(r.orientation == Top); err != nil {
			return fail("ripoff", err)
		}
	}
	stage = "driver"
	std, err := drv.Init()
	if err != nil {
		return fail("driver", err)
	}
	started = true
	stage = "config"
	scr, err := drv.CurrentScreen()
	if err == nil {
		err = applyConfig(drv, cfg)
	}
	if err != nil {
		started = false
		_ = drv.End()
		return fail("config", err)
	}

	s = &Session{
		id:      id,
		drv:     drv,
		log:     entry,
		closer:  closer,
		arena:   newArena(),
		ripoffs: lines,
	}
	s.stdscr = &Window{s: s, n: s.arena.track(std, nil), own: sessionScoped}
	s.screen = &Screen{s: s, n: s.arena.track(scr, nil), own: sessionScoped}
	s.current = s.screen.n

	entry.WithFields(logrus.Fields{
		"lines":   drv.Lines(),
		"cols":    drv.Cols(),
		"ripoffs": len(lines),
	}).Info("session started")
	return s, nil
}

func applyConfig(drv native.Driver, cfg config.Config) error {
	drv.SetMouseInterval(cfg.Mouse.Interval())
	if _, err := drv.CursSet(cfg.Cursor.Visibility); err != nil {
		return err
	}

	reqs, err := cfg.Mouse.Requests()
	if err != nil || len(reqs) == 0 {
		return err
	}
	mask, err := mouse.Combine(reqs...)
	if err != nil {
		return err
	}
	_, _, err = drv.MouseMask(uint32(mask))
	return err
}

// protect runs fn, turning a panic into *AbnormalTermination.
func (s *Session) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			at := newAbnormalTermination(r, string(debug.Stack()))
			s.log.WithField("panic", r).Error("session body panicked")
			err = at
		}
	}()
	return fn()
}
