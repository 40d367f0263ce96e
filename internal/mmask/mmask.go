// Package mmask holds the curses mouse-mask bit layout (ABI 6, mouse
// version 2) shared by the native driver, which produces masks, and the
// mouse package, which decodes them.
package mmask

// Per-button event bits, shifted into place by Bits.
const (
	Released      uint32 = 0x01
	Pressed       uint32 = 0x02
	Clicked       uint32 = 0x04
	DoubleClicked uint32 = 0x08
	TripleClicked uint32 = 0x10

	// EventBits is the width of one button's group.
	EventBits = 5

	// Buttons is the number of buttons the layout encodes.
	Buttons = 5
)

// Modifier and reporting bits live in the sixth group.
const (
	Ctrl                = 0x01 << (Buttons * EventBits)
	Shift               = 0x02 << (Buttons * EventBits)
	Alt                 = 0x04 << (Buttons * EventBits)
	ReportMousePosition = 0x08 << (Buttons * EventBits)
	AllMouseEvents      = ReportMousePosition - 1

	Modifiers = Ctrl | Shift | Alt
)

// Bits places event bits for button (1-based) in its group.
// Out-of-range buttons yield zero.
func Bits(button int, ev uint32) uint32 {
	if button < 1 || button > Buttons {
		return 0
	}
	return (ev & 0x1f) << ((button - 1) * EventBits)
}

// Group extracts the event bits of button (1-based) from mask.
func Group(mask uint32, button int) uint32 {
	if button < 1 || button > Buttons {
		return 0
	}
	return (mask >> ((button - 1) * EventBits)) & 0x1f
}
