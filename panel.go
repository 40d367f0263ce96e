package ncursesw

// Panel places a window in the stacking order.
type Panel struct {
	s       *Session
	n       *node
	own     ownership
	counted *node
	closed  bool
}

func (p *Panel) arenaNode() *node { return p.n }

// Handle returns the native handle for identity comparison.
func (p *Panel) Handle() Handle {
	return p.n.h
}

// IsOwner reports whether Close releases the native panel. Panels found
// through stack queries never own.
func (p *Panel) IsOwner() bool {
	return p.own == owner
}

func (p *Panel) live(op string) error {
	if p.closed || p.n.released {
		return newCursesError(op, ErrDisposed)
	}
	return nil
}

func (p *Panel) call(op string, fn func(h Handle) error) error {
	if err := p.live(op); err != nil {
		return err
	}
	if err := fn(p.n.h); err != nil {
		return newCursesError(op, err)
	}
	return nil
}

// Window returns a view of the panel's window.
func (p *Panel) Window() (*Window, error) {
	if err := p.live("panel_window"); err != nil {
		return nil, err
	}
	h, err := p.s.drv.PanelWindow(p.n.h)
	if err != nil {
		return nil, newCursesError("panel_window", err)
	}
	return p.s.windowView(h), nil
}

// Above returns a view of the panel above this one.
func (p *Panel) Above() (*Panel, bool) {
	if p.live("panel_above") != nil {
		return nil, false
	}
	h, ok := p.s.drv.PanelAbove(p.n.h)
	if !ok {
		return nil, false
	}
	return p.s.panelView(h), true
}

// Below returns a view of the panel below this one.
func (p *Panel) Below() (*Panel, bool) {
	if p.live("panel_below") != nil {
		return nil, false
	}
	h, ok := p.s.drv.PanelBelow(p.n.h)
	if !ok {
		return nil, false
	}
	return p.s.panelView(h), true
}

// Top raises the panel to the top of the stack, showing it if hidden.
func (p *Panel) Top() error {
	return p.call("top_panel", p.s.drv.TopPanel)
}

// Bottom lowers the panel to the bottom of the stack.
func (p *Panel) Bottom() error {
	return p.call("bottom_panel", p.s.drv.BottomPanel)
}

// Hide removes the panel from the stack without releasing it.
func (p *Panel) Hide() error {
	return p.call("hide_panel", p.s.drv.HidePanel)
}

// Show puts a hidden panel back on top of the stack.
func (p *Panel) Show() error {
	return p.call("show_panel", p.s.drv.ShowPanel)
}

// Hidden reports whether the panel is off the stack.
func (p *Panel) Hidden() (bool, error) {
	var hidden bool
	err := p.call("panel_hidden", func(h Handle) error {
		var err error
		hidden, err = p.s.drv.PanelHidden(h)
		return err
	})
	return hidden, err
}

// Move places the panel's window at o.
func (p *Panel) Move(o Origin) error {
	return p.call("move_panel", func(h Handle) error {
		return p.s.drv.MovePanel(h, toInt(o.Y), toInt(o.X))
	})
}

// Close releases the panel if this wrapper owns it. The window stays.
func (p *Panel) Close() error {
	if err := p.live("del_panel"); err != nil {
		return err
	}
	if p.own != owner {
		p.detach()
		return nil
	}
	return p.dispose(false)
}

func (p *Panel) detach() {
	p.closed = true
	if p.counted != nil {
		p.counted.children--
		p.counted = nil
	}
}

func (p *Panel) dispose(bool) error {
	if err := p.s.drv.DelPanel(p.n.h); err != nil {
		return newCursesError("del_panel", err)
	}
	p.s.arena.release(p.n)
	p.detach()
	p.s.log.WithField("panel", p.n.h).Debug("released panel")
	return nil
}
