package ncursesw

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/ncursesw/internal/native"
	"github.com/dshills/ncursesw/mouse"
)

// Session is an active terminal. It is valid only inside the body passed
// to Init.
type Session struct {
	id     uuid.UUID
	drv    native.Driver
	log    *logrus.Entry
	closer io.Closer
	arena  *arena

	stdscr  *Window
	screen  *Screen
	current *node
	ripoffs []*RipoffLine

	done bool
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id.String()
}

// Logger returns the session's log entry.
func (s *Session) Logger() *logrus.Entry {
	return s.log
}

// InitialWindow returns the standard screen window. It belongs to the
// session and cannot be closed.
func (s *Session) InitialWindow() *Window {
	return s.stdscr
}

// InitialScreen returns the terminal the session started on.
func (s *Session) InitialScreen() *Screen {
	return s.screen
}

func (s *Session) live(op string) error {
	if s.done {
		return newCursesError(op, ErrDisposed)
	}
	return nil
}

// NewWindow creates an owned window on the current screen. Zero size
// fields extend it to the edge of the screen.
func (s *Session) NewWindow(size Size, at Origin) (*Window, error) {
	if err := s.live("newwin"); err != nil {
		return nil, err
	}
	h, err := s.drv.NewWin(toInt(size.Lines), toInt(size.Cols), toInt(at.Y), toInt(at.X))
	if err != nil {
		return nil, newCursesError("newwin", err)
	}

	w := &Window{s: s, n: s.arena.track(h, s.current), own: owner}
	if err := s.arena.adopt(w); err != nil {
		return nil, newCursesError("newwin", err)
	}
	if s.current != s.screen.n {
		w.hold(s.current)
	}
	s.log.WithField("window", h).Debug("created window")
	return w, nil
}

// NewScreen opens another terminal of type term. It does not become
// current until SetCurrent.
func (s *Session) NewScreen(term string) (*Screen, error) {
	if err := s.live("newterm"); err != nil {
		return nil, err
	}
	h, err := s.drv.NewScreen(term)
	if err != nil {
		return nil, newCursesError("newterm", err)
	}

	scr := &Screen{s: s, n: s.arena.track(h, nil), own: owner}
	if err := s.arena.adopt(scr); err != nil {
		return nil, newCursesError("newterm", err)
	}
	s.log.WithFields(logrus.Fields{"screen": h, "term": term}).Debug("created screen")
	return scr, nil
}

// NewPanel puts w on top of the panel stack. w cannot be closed while the
// panel is open.
func (s *Session) NewPanel(w *Window) (*Panel, error) {
	if err := s.live("new_panel"); err != nil {
		return nil, err
	}
	if err := w.live("new_panel"); err != nil {
		return nil, err
	}
	h, err := s.drv.NewPanel(w.n.h)
	if err != nil {
		return nil, newCursesError("new_panel", err)
	}

	p := &Panel{s: s, n: s.arena.track(h, w.n), own: owner}
	if err := s.arena.adopt(p); err != nil {
		return nil, newCursesError("new_panel", err)
	}
	w.n.children++
	p.counted = w.n
	s.log.WithField("panel", h).Debug("created panel")
	return p, nil
}

// TopPanel returns a view of the top panel.
func (s *Session) TopPanel() (*Panel, bool) {
	if s.done {
		return nil, false
	}
	h, ok := s.drv.PanelBelow(Handle{})
	if !ok {
		return nil, false
	}
	return s.panelView(h), true
}

// BottomPanel returns a view of the bottom panel.
func (s *Session) BottomPanel() (*Panel, bool) {
	if s.done {
		return nil, false
	}
	h, ok := s.drv.PanelAbove(Handle{})
	if !ok {
		return nil, false
	}
	return s.panelView(h), true
}

func (s *Session) panelView(h Handle) *Panel {
	return &Panel{s: s, n: s.arena.track(h, nil), own: view}
}

func (s *Session) windowView(h Handle) *Window {
	return &Window{s: s, n: s.arena.track(h, nil), own: view}
}

// UpdatePanels stages the panel stack for DoUpdate.
func (s *Session) UpdatePanels() error {
	if err := s.live("update_panels"); err != nil {
		return err
	}
	if err := s.drv.UpdatePanels(); err != nil {
		return newCursesError("update_panels", err)
	}
	return nil
}

// DoUpdate shows everything staged with NOutRefresh or UpdatePanels.
func (s *Session) DoUpdate() error {
	if err := s.live("doupdate"); err != nil {
		return err
	}
	if err := s.drv.DoUpdate(); err != nil {
		return newCursesError("doupdate", err)
	}
	return nil
}

// Lines returns the usable height of the current screen, or 0 once the
// session has ended.
func (s *Session) Lines() int {
	if s.done {
		return 0
	}
	return s.drv.Lines()
}

// Cols returns the width of the current screen, or 0 once the session has
// ended.
func (s *Session) Cols() int {
	if s.done {
		return 0
	}
	return s.drv.Cols()
}

// SetMouseMask enables the requested mouse events and returns the mask
// now in effect. No requests disables the mouse.
func (s *Session) SetMouseMask(masks ...mouse.Mask) (mouse.NativeMask, error) {
	if err := s.live("mousemask"); err != nil {
		return 0, err
	}
	want, err := mouse.Combine(masks...)
	if err != nil {
		return 0, err
	}
	return s.setMouseMask(want)
}

// SetMouseEvents enables exactly the given button transitions.
func (s *Session) SetMouseEvents(states ...mouse.ButtonState) (mouse.NativeMask, error) {
	if err := s.live("mousemask"); err != nil {
		return 0, err
	}
	return s.setMouseMask(mouse.Encode(states...))
}

func (s *Session) setMouseMask(want mouse.NativeMask) (mouse.NativeMask, error) {
	applied, _, err := s.drv.MouseMask(uint32(want))
	if err != nil {
		return 0, newCursesError("mousemask", err)
	}
	return mouse.NativeMask(applied), nil
}

// MouseInterval sets the press/release window for clicks and returns the
// previous one. After the session ends it does nothing and returns 0.
func (s *Session) MouseInterval(d time.Duration) time.Duration {
	if s.done {
		return 0
	}
	return s.drv.SetMouseInterval(d)
}

// InitPair defines color pair pair. Pair 0 is fixed.
func (s *Session) InitPair(pair int16, fg, bg Color) error {
	if err := s.live("init_pair"); err != nil {
		return err
	}
	if err := s.drv.InitPair(pair, fg, bg); err != nil {
		return newCursesError("init_pair", err)
	}
	return nil
}

// Beep rings the terminal bell.
func (s *Session) Beep() error {
	if err := s.live("beep"); err != nil {
		return err
	}
	if err := s.drv.Beep(); err != nil {
		return newCursesError("beep", err)
	}
	return nil
}

// CursorVisibility sets the cursor to hidden (0), normal (1) or very
// visible (2) and returns the previous setting.
func (s *Session) CursorVisibility(v int) (int, error) {
	if err := s.live("curs_set"); err != nil {
		return 0, err
	}
	old, err := s.drv.CursSet(v)
	if err != nil {
		return old, newCursesError("curs_set", err)
	}
	return old, nil
}

// Interrupt wakes a GetCh blocked in another goroutine; it returns
// ErrInterrupted. Safe for concurrent use.
func (s *Session) Interrupt() {
	s.drv.Interrupt()
}

// teardown releases everything left open, newest first, then restores the
// terminal. Runs once.
func (s *Session) teardown() error {
	if s.done {
		return nil
	}
	s.done = true
	defer active.Store(false)

	for _, d := range s.arena.live() {
		if err := d.dispose(true); err != nil {
			s.log.WithError(err).Warn("release during teardown failed")
		}
	}
	for _, r := range s.ripoffs {
		r.unrealize()
	}
	ripoffs.clear()
	s.arena.releaseAll()

	err := s.drv.End()
	if err != nil {
		s.log.WithError(err).Error("endwin failed")
	} else {
		s.log.Info("session ended")
	}
	_ = s.closer.Close()
	if err != nil {
		return newCursesError("endwin", err)
	}
	return nil
}
