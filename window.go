package ncursesw

import (
	"github.com/dshills/ncursesw/mouse"
)

// Window is a rectangular character canvas.
type Window struct {
	s      *Session
	n      *node
	own    ownership
	parent *Window

	// counted holds one of the node's children slots while open.
	counted *node
	closed  bool
}

func (w *Window) arenaNode() *node { return w.n }

// Handle returns the native handle for identity comparison.
func (w *Window) Handle() Handle {
	return w.n.h
}

// IsOwner reports whether Close releases the native window.
func (w *Window) IsOwner() bool {
	return w.own == owner
}

// Parent returns the window this one was derived from, or nil.
func (w *Window) Parent() *Window {
	return w.parent
}

func (w *Window) live(op string) error {
	if w.closed || w.n.released {
		return newCursesError(op, ErrDisposed)
	}
	return nil
}

// call runs a primitive against the window's handle.
func (w *Window) call(op string, fn func(h Handle) error) error {
	if err := w.live(op); err != nil {
		return err
	}
	if err := fn(w.n.h); err != nil {
		return newCursesError(op, err)
	}
	return nil
}

// Size returns the window extent.
func (w *Window) Size() (Size, error) {
	var sz Size
	err := w.call("getmaxyx", func(h Handle) error {
		lines, cols, err := w.s.drv.WinSize(h)
		sz = Size{Lines: fromInt(lines), Cols: fromInt(cols)}
		return err
	})
	return sz, err
}

// MaxY returns the number of lines.
func (w *Window) MaxY() (uint, error) {
	sz, err := w.Size()
	return sz.Lines, err
}

// MaxX returns the number of columns.
func (w *Window) MaxX() (uint, error) {
	sz, err := w.Size()
	return sz.Cols, err
}

// Begin returns the window's top-left corner relative to the usable
// screen area.
func (w *Window) Begin() (Origin, error) {
	var o Origin
	err := w.call("getbegyx", func(h Handle) error {
		y, x, err := w.s.drv.WinBegin(h)
		o = Origin{Y: fromInt(y), X: fromInt(x)}
		return err
	})
	return o, err
}

// Cursor returns the cursor position within the window.
func (w *Window) Cursor() (Origin, error) {
	var o Origin
	err := w.call("getyx", func(h Handle) error {
		y, x, err := w.s.drv.WinCursor(h)
		o = Origin{Y: fromInt(y), X: fromInt(x)}
		return err
	})
	return o, err
}

// Encloses reports whether a terminal position, such as a mouse origin,
// falls inside the window.
func (w *Window) Encloses(o Origin) bool {
	if w.live("wenclose") != nil {
		return false
	}
	return w.s.drv.WEnclose(w.n.h, toInt(o.Y), toInt(o.X))
}

// Move places the cursor.
func (w *Window) Move(o Origin) error {
	return w.call("wmove", func(h Handle) error {
		return w.s.drv.WMove(h, toInt(o.Y), toInt(o.X))
	})
}

// MvAddStr writes s starting at o, wrapping at the right edge. Nothing is
// written if s does not fit before the end of the window.
func (w *Window) MvAddStr(o Origin, s string) error {
	return w.call("mvwaddstr", func(h Handle) error {
		return w.s.drv.MvWAddStr(h, toInt(o.Y), toInt(o.X), s)
	})
}

// AddStr writes s at the cursor.
func (w *Window) AddStr(s string) error {
	return w.call("waddstr", func(h Handle) error {
		return w.s.drv.WAddStr(h, s)
	})
}

// MvChgAt sets attributes and color pair of n cells from o without
// changing their text. A negative n runs to the end of the line.
func (w *Window) MvChgAt(o Origin, n int, attr Attr, pair int16) error {
	return w.call("mvwchgat", func(h Handle) error {
		return w.s.drv.MvWChgAt(h, toInt(o.Y), toInt(o.X), n, attr, pair)
	})
}

// SetAttr sets the attributes used by later writes.
func (w *Window) SetAttr(attr Attr, pair int16) error {
	return w.call("wattr_set", func(h Handle) error {
		return w.s.drv.WAttrSet(h, attr, pair)
	})
}

// Erase blanks the window.
func (w *Window) Erase() error {
	return w.call("werase", w.s.drv.WErase)
}

// Box draws a border. Zero runes select the default line characters.
func (w *Window) Box(vert, horiz rune) error {
	return w.call("box", func(h Handle) error {
		return w.s.drv.Box(h, vert, horiz)
	})
}

// Refresh shows the window on the terminal now.
func (w *Window) Refresh() error {
	return w.call("wrefresh", w.s.drv.WRefresh)
}

// NOutRefresh stages the window for the next Session.DoUpdate.
func (w *Window) NOutRefresh() error {
	return w.call("wnoutrefresh", w.s.drv.WNOutRefresh)
}

// GetCh blocks until a key, mouse event or resize arrives. A pending
// change to the window is shown first. It fails with ErrInterrupted when
// woken by Session.Interrupt.
func (w *Window) GetCh() (Event, error) {
	if err := w.live("wgetch"); err != nil {
		return Event{}, err
	}
	key, err := w.s.drv.WGetCh(w.n.h)
	if err != nil {
		return Event{}, newCursesError("wgetch", err)
	}

	ev := Event{Key: key}
	if key == KeyMouse {
		m, err := mouse.Poll(w.s.drv)
		if err != nil {
			return ev, newCursesError("getmouse", err)
		}
		ev.Mouse = &m
	}
	return ev, nil
}

// SubWindow carves a window out of this one at o, relative to this
// window. Both share character storage. The result is a view: closing it
// releases nothing, and this window cannot be closed while it is open.
func (w *Window) SubWindow(size Size, o Origin) (*Window, error) {
	if err := w.live("derwin"); err != nil {
		return nil, err
	}
	h, err := w.s.drv.DerWin(w.n.h, toInt(size.Lines), toInt(size.Cols), toInt(o.Y), toInt(o.X))
	if err != nil {
		return nil, newCursesError("derwin", err)
	}

	sub := &Window{
		s:      w.s,
		n:      w.s.arena.track(h, w.n),
		own:    view,
		parent: w,
	}
	sub.hold(w.n)
	w.s.log.WithField("window", h).Debug("derived window")
	return sub, nil
}

// hold takes a children slot on n until the wrapper closes.
func (w *Window) hold(n *node) {
	n.children++
	w.counted = n
}

func (w *Window) detach() {
	w.closed = true
	if w.counted != nil {
		w.counted.children--
		w.counted = nil
	}
}

// Close releases the window if this wrapper owns it. Closing a view only
// invalidates the view. Sub-windows and panels of an owned window or a
// sub-window must be closed first.
func (w *Window) Close() error {
	if err := w.live("delwin"); err != nil {
		return err
	}
	switch w.own {
	case sessionScoped:
		return newCursesError("delwin", ErrSessionScoped)
	case view:
		// A sub-window keeps its parent's slot while its own children are open.
		if w.counted != nil && w.n.children > 0 {
			return newCursesError("delwin", ErrChildrenAlive)
		}
		w.detach()
		return nil
	}
	return w.dispose(false)
}

func (w *Window) dispose(force bool) error {
	if !force && w.n.children > 0 {
		return newCursesError("delwin", ErrChildrenAlive)
	}
	if err := w.s.drv.DelWin(w.n.h); err != nil {
		return newCursesError("delwin", err)
	}
	w.s.arena.release(w.n)
	w.detach()
	w.s.log.WithField("window", w.n.h).Debug("released window")
	return nil
}
