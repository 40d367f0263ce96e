package ncursesw

import (
	"fmt"
	"sync"

	"github.com/dshills/ncursesw/internal/native"
)

// Orientation selects the terminal edge a ripoff line is taken from.
type Orientation uint8

const (
	Top Orientation = iota
	Bottom
)

func (o Orientation) String() string {
	switch o {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// RipoffFunc draws into a ripped-off line. cols is the line's width.
type RipoffFunc func(w *Window, cols int) error

// RipoffLine is a reserved terminal row.
type RipoffLine struct {
	orientation Orientation
	id          int
	init        RipoffFunc

	sess *Session
	win  *Window
}

// NewRipoffLine reserves a row for the next session. See
// Gate.NewRipoffLine.
func NewRipoffLine(o Orientation, init RipoffFunc) (*RipoffLine, error) {
	return ripoffs.register(o, init)
}

// registry holds the lines reserved for the next session in the process.
// The slots follow the library's limit of one line per edge.
type registry struct {
	mu     sync.Mutex
	slots  [2]*RipoffLine
	order  []*RipoffLine
	nextID int
}

var ripoffs registry

func (reg *registry) register(o Orientation, init RipoffFunc) (*RipoffLine, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if active.Load() {
		return nil, &RegistrationError{Orientation: o, Err: ErrSessionStarted}
	}
	if o != Top && o != Bottom {
		return nil, &RegistrationError{Orientation: o, Err: native.ErrInvalidArgument}
	}
	if reg.slots[o] != nil {
		return nil, &RegistrationError{Orientation: o, Err: ErrDuplicateRipoff}
	}

	reg.nextID++
	r := &RipoffLine{orientation: o, id: reg.nextID, init: init}
	reg.slots[o] = r
	reg.order = append(reg.order, r)
	return r, nil
}

// take hands the registered lines to a starting session.
func (reg *registry) take() []*RipoffLine {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return append([]*RipoffLine(nil), reg.order...)
}

// clear frees both slots once the session that consumed them ends.
func (reg *registry) clear() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.slots = [2]*RipoffLine{}
	reg.order = nil
}

// Orientation returns the edge the line is taken from.
func (r *RipoffLine) Orientation() Orientation {
	return r.orientation
}

// ID returns the registration number, unique in the process.
func (r *RipoffLine) ID() int {
	return r.id
}

// Equal reports whether both lines reserve the same edge.
func (r *RipoffLine) Equal(other *RipoffLine) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.orientation == other.orientation
}

// Update calls fn with the line's one-row window and that window's width.
// The window belongs to the session; fn should refresh it when done
// drawing.
func (r *RipoffLine) Update(fn RipoffFunc) error {
	if r.win == nil || r.sess == nil || r.sess.done {
		return ErrNotRealized
	}
	cols, err := r.win.MaxX()
	if err != nil {
		return err
	}
	return fn(r.win, int(cols))
}

// realize binds the line to its window and runs the registered function.
func (r *RipoffLine) realize(s *Session) error {
	h, err := s.drv.RippedWindow(r.orientation == Top)
	if err != nil {
		return newCursesError("ripoffline", err)
	}
	r.sess = s
	r.win = &Window{s: s, n: s.arena.track(h, nil), own: sessionScoped}
	if r.init == nil {
		return nil
	}
	return r.Update(r.init)
}

func (r *RipoffLine) unrealize() {
	r.sess, r.win = nil, nil
}
