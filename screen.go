package ncursesw

// Screen is a terminal the session can draw on.
type Screen struct {
	s      *Session
	n      *node
	own    ownership
	closed bool
}

func (scr *Screen) arenaNode() *node { return scr.n }

// Handle returns the native handle for identity comparison.
func (scr *Screen) Handle() Handle {
	return scr.n.h
}

// IsOwner reports whether Close releases the native screen.
func (scr *Screen) IsOwner() bool {
	return scr.own == owner
}

func (scr *Screen) live(op string) error {
	if scr.closed || scr.n.released {
		return newCursesError(op, ErrDisposed)
	}
	return nil
}

// SetCurrent directs later window creation, input and updates to this
// screen.
func (scr *Screen) SetCurrent() error {
	if err := scr.live("set_term"); err != nil {
		return err
	}
	if err := scr.s.drv.SetTerm(scr.n.h); err != nil {
		return newCursesError("set_term", err)
	}
	scr.s.current = scr.n
	return nil
}

// Close releases the screen if this wrapper owns it. Windows created on
// the screen must be closed first.
func (scr *Screen) Close() error {
	if err := scr.live("delscreen"); err != nil {
		return err
	}
	switch scr.own {
	case sessionScoped:
		return newCursesError("delscreen", ErrSessionScoped)
	case view:
		scr.closed = true
		return nil
	}
	return scr.dispose(false)
}

func (scr *Screen) dispose(force bool) error {
	if !force && scr.n.children > 0 {
		return newCursesError("delscreen", ErrChildrenAlive)
	}
	if err := scr.s.drv.DelScreen(scr.n.h); err != nil {
		return newCursesError("delscreen", err)
	}
	scr.s.arena.release(scr.n)
	scr.closed = true
	if scr.s.current == scr.n {
		scr.s.current = scr.s.screen.n
	}
	scr.s.log.WithField("screen", scr.n.h).Debug("released screen")
	return nil
}
