package ncursesw

import (
	"io"

	"github.com/dshills/ncursesw/mouse"
)

// Positioner writes at explicit positions.
type Positioner interface {
	Move(o Origin) error
	Cursor() (Origin, error)
	MvAddStr(o Origin, s string) error
	MvChgAt(o Origin, n int, attr Attr, pair int16) error
}

// AxisReader reports a window's extent.
type AxisReader interface {
	MaxY() (uint, error)
	MaxX() (uint, error)
}

// Refresher pushes buffered content to the terminal.
type Refresher interface {
	Refresh() error
	NOutRefresh() error
}

// InputReader reads one input event.
type InputReader interface {
	GetCh() (Event, error)
}

// Stacker moves within the panel stack.
type Stacker interface {
	Top() error
	Bottom() error
	Above() (*Panel, bool)
	Below() (*Panel, bool)
}

// Event is one unit of input: a key, a mouse event or a resize.
type Event struct {
	Key Key
	// Mouse is set when Key is KeyMouse.
	Mouse *mouse.Event
}

// IsMouse reports whether the event came from the mouse.
func (e Event) IsMouse() bool {
	return e.Mouse != nil
}

// IsResize reports whether the terminal was resized.
func (e Event) IsResize() bool {
	return e.Key == KeyResize
}

var (
	_ Positioner  = (*Window)(nil)
	_ AxisReader  = (*Window)(nil)
	_ Refresher   = (*Window)(nil)
	_ InputReader = (*Window)(nil)
	_ io.Closer   = (*Window)(nil)

	_ Stacker   = (*Panel)(nil)
	_ io.Closer = (*Panel)(nil)

	_ io.Closer = (*Screen)(nil)
)
