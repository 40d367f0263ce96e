package mouse

import (
	"fmt"

	"github.com/dshills/ncursesw/internal/mmask"
)

// Button is one of the five buttons curses reports.
type Button uint8

const (
	One Button = iota + 1
	Two
	Three
	Four
	Five
)

// Buttons lists every button in ascending order.
var Buttons = []Button{One, Two, Three, Four, Five}

// Number returns the curses button number, 1 through 5.
func (b Button) Number() int {
	return int(b)
}

// Valid reports whether b is one of One through Five.
func (b Button) Valid() bool {
	return b >= One && b <= Five
}

// String returns a string representation of the button.
func (b Button) String() string {
	if !b.Valid() {
		return "none"
	}
	return fmt.Sprintf("button%d", b.Number())
}

// ButtonFromNumber is the inverse of Number. ok is false outside 1..5.
func ButtonFromNumber(n int) (b Button, ok bool) {
	if n < 1 || n > mmask.Buttons {
		return 0, false
	}
	return Button(n), true
}

// ButtonEvent is a button transition kind.
type ButtonEvent uint8

// Event kinds in canonical order.
const (
	Released ButtonEvent = iota + 1
	Pressed
	Clicked
	DoubleClicked
	TripleClicked
)

// ButtonEvents lists every event kind in canonical order.
var ButtonEvents = []ButtonEvent{Released, Pressed, Clicked, DoubleClicked, TripleClicked}

// bit returns the event's bit within one button group.
func (e ButtonEvent) bit() uint32 {
	switch e {
	case Released:
		return mmask.Released
	case Pressed:
		return mmask.Pressed
	case Clicked:
		return mmask.Clicked
	case DoubleClicked:
		return mmask.DoubleClicked
	case TripleClicked:
		return mmask.TripleClicked
	default:
		return 0
	}
}

// String returns a string representation of the event kind.
func (e ButtonEvent) String() string {
	switch e {
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	case Clicked:
		return "clicked"
	case DoubleClicked:
		return "double-clicked"
	case TripleClicked:
		return "triple-clicked"
	default:
		return "none"
	}
}

// ButtonState is one decoded transition.
type ButtonState struct {
	Button Button
	Event  ButtonEvent
}

func (s ButtonState) String() string {
	return s.Button.String() + " " + s.Event.String()
}

// Modifier is the set of keyboard modifiers held during a mouse event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt

	ModNone Modifier = 0
)

// Has reports whether every modifier in m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String returns a string representation of the modifier set.
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	s := ""
	for _, p := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"}} {
		if m&p.mod == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += p.name
	}
	return s
}
