package ncursesw

import (
	"fmt"

	"github.com/dshills/ncursesw/internal/handle"
	"github.com/dshills/ncursesw/internal/native"
)

// Handle identifies a native resource. Two wrappers of the same resource
// have equal handles.
type Handle = handle.Handle

// Origin is a cell position, row first.
type Origin struct {
	Y, X uint
}

func (o Origin) String() string {
	return fmt.Sprintf("(%d,%d)", o.Y, o.X)
}

// Size is a window extent. A zero field extends the window to the edge of
// the area it is created in.
type Size struct {
	Lines, Cols uint
}

// Key is a key code: a code point or one of the Key constants.
type Key = native.Key

// Special keys.
const (
	KeyDown      = native.KeyDown
	KeyUp        = native.KeyUp
	KeyLeft      = native.KeyLeft
	KeyRight     = native.KeyRight
	KeyHome      = native.KeyHome
	KeyEnd       = native.KeyEnd
	KeyBackspace = native.KeyBackspace
	KeyDC        = native.KeyDC
	KeyIC        = native.KeyIC
	KeyNPage     = native.KeyNPage
	KeyPPage     = native.KeyPPage
	KeyEnter     = native.KeyEnter
	KeyBTab      = native.KeyBTab
	KeyMouse     = native.KeyMouse
	KeyResize    = native.KeyResize
)

// KeyF returns the code of function key n.
func KeyF(n int) Key {
	return native.KeyF(n)
}

// Attr is a set of video attributes.
type Attr = native.Attr

// Video attributes.
const (
	AttrNormal    = native.AttrNormal
	AttrStandout  = native.AttrStandout
	AttrUnderline = native.AttrUnderline
	AttrReverse   = native.AttrReverse
	AttrBlink     = native.AttrBlink
	AttrDim       = native.AttrDim
	AttrBold      = native.AttrBold
	AttrItalic    = native.AttrItalic
)

// Color is a color number for InitPair.
type Color = native.Color

// Colors.
const (
	ColorDefault = native.ColorDefault
	ColorBlack   = native.ColorBlack
	ColorRed     = native.ColorRed
	ColorGreen   = native.ColorGreen
	ColorYellow  = native.ColorYellow
	ColorBlue    = native.ColorBlue
	ColorMagenta = native.ColorMagenta
	ColorCyan    = native.ColorCyan
	ColorWhite   = native.ColorWhite
)

// toInt converts a coordinate for the driver. Values beyond int range map
// to -1, which every primitive rejects as out of bounds.
func toInt(v uint) int {
	if v > uint(^uint(0)>>1) {
		return -1
	}
	return int(v)
}

func fromInt(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}
