// Package native provides the primitive operation set the curses wrapper
// is built on: create and destroy windows, panels and screens, write at a
// position, stage and flush refreshes, poll input and manage the mouse mask.
//
// Everything above this package reaches the terminal only through Driver.
// TcellDriver implements it on top of tcell; Recorder decorates any Driver
// with call accounting for tests.
package native

import (
	"errors"
	"time"

	"github.com/dshills/ncursesw/internal/handle"
)

// Primitive failures.
var (
	ErrNotStarted      = errors.New("terminal not initialized")
	ErrAlreadyStarted  = errors.New("terminal already initialized")
	ErrUnknownHandle   = errors.New("unknown handle")
	ErrOutOfBounds     = errors.New("position outside window")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBusy            = errors.New("resource in use")
	ErrInterrupted     = errors.New("input interrupted")
	ErrNoMouseEvent    = errors.New("no mouse event pending")
	ErrRipoffLimit     = errors.New("too many ripped-off lines")
)

// Key is a curses key code: a Unicode code point for ordinary input or
// one of the Key* constants below.
type Key int32

// Curses key codes.
const (
	KeyBreak     Key = 0401
	KeyDown      Key = 0402
	KeyUp        Key = 0403
	KeyLeft      Key = 0404
	KeyRight     Key = 0405
	KeyHome      Key = 0406
	KeyBackspace Key = 0407
	KeyF0        Key = 0410
	KeyDC        Key = 0512
	KeyIC        Key = 0513
	KeyNPage     Key = 0522
	KeyPPage     Key = 0523
	KeyEnter     Key = 0527
	KeyBTab      Key = 0541
	KeyEnd       Key = 0550
	KeyMouse     Key = 0631
	KeyResize    Key = 0632
)

// KeyF returns the code for function key n.
func KeyF(n int) Key {
	return KeyF0 + Key(n)
}

// Attr is a curses video attribute set (attr_t).
type Attr uint32

// Video attributes.
const (
	AttrNormal    Attr = 0
	AttrStandout  Attr = 1 << 16
	AttrUnderline Attr = 1 << 17
	AttrReverse   Attr = 1 << 18
	AttrBlink     Attr = 1 << 19
	AttrDim       Attr = 1 << 20
	AttrBold      Attr = 1 << 21
	AttrItalic    Attr = 1 << 31
)

// Color is a curses color number; ColorDefault selects the terminal default.
type Color int16

// Basic colors.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// MouseEvent is the raw record returned by GetMouse (MEVENT).
type MouseEvent struct {
	ID     int16
	X, Y   int
	Z      int
	BState uint32
}

// Driver is the primitive operation set of the terminal library.
//
// Coordinates are (y, x) as in curses. Window positions are relative to
// the usable area of the screen, below any line ripped off at the top.
// A Driver is not safe for concurrent use except Interrupt.
type Driver interface {
	// Init acquires the terminal and returns the standard screen window.
	Init() (handle.Handle, error)
	// End restores the terminal and releases every native resource.
	End() error

	// Lines and Cols report the usable size of the current screen.
	Lines() int
	Cols() int

	// RipOffLine reserves one line before Init.
	RipOffLine(top bool) error
	// RippedWindow returns the one-row window realized for a reservation.
	RippedWindow(top bool) (handle.Handle, error)

	// CurrentScreen returns the screen input and output currently go to.
	CurrentScreen() (handle.Handle, error)
	NewScreen(term string) (handle.Handle, error)
	SetTerm(scr handle.Handle) error
	DelScreen(scr handle.Handle) error

	NewWin(lines, cols, y, x int) (handle.Handle, error)
	// DerWin carves a window out of parent; both share character storage.
	DerWin(parent handle.Handle, lines, cols, y, x int) (handle.Handle, error)
	// DelWin releases a window and every window derived from it.
	DelWin(win handle.Handle) error

	WinSize(win handle.Handle) (lines, cols int, err error)
	WinBegin(win handle.Handle) (y, x int, err error)
	WinCursor(win handle.Handle) (y, x int, err error)
	// WEnclose reports whether terminal coordinates fall inside win.
	WEnclose(win handle.Handle, y, x int) bool
	WMove(win handle.Handle, y, x int) error
	WAttrSet(win handle.Handle, attr Attr, pair int16) error
	MvWAddStr(win handle.Handle, y, x int, s string) error
	WAddStr(win handle.Handle, s string) error
	MvWChgAt(win handle.Handle, y, x, n int, attr Attr, pair int16) error
	WErase(win handle.Handle) error
	Box(win handle.Handle, vert, horiz rune) error

	WRefresh(win handle.Handle) error
	WNOutRefresh(win handle.Handle) error
	DoUpdate() error

	// WGetCh blocks until a key or mouse event is available.
	WGetCh(win handle.Handle) (Key, error)
	GetMouse() (MouseEvent, error)
	// MouseMask installs newmask and returns the applied and previous masks.
	MouseMask(newmask uint32) (applied, old uint32, err error)
	SetMouseInterval(d time.Duration) time.Duration

	NewPanel(win handle.Handle) (handle.Handle, error)
	DelPanel(pan handle.Handle) error
	PanelWindow(pan handle.Handle) (handle.Handle, error)
	// PanelAbove returns the panel above pan, or the bottom panel for a
	// zero handle. ok is false when there is none.
	PanelAbove(pan handle.Handle) (above handle.Handle, ok bool)
	// PanelBelow returns the panel below pan, or the top panel for a zero
	// handle.
	PanelBelow(pan handle.Handle) (below handle.Handle, ok bool)
	TopPanel(pan handle.Handle) error
	BottomPanel(pan handle.Handle) error
	HidePanel(pan handle.Handle) error
	ShowPanel(pan handle.Handle) error
	PanelHidden(pan handle.Handle) (bool, error)
	MovePanel(pan handle.Handle, y, x int) error
	UpdatePanels() error

	InitPair(pair int16, fg, bg Color) error
	CursSet(visibility int) (old int, err error)
	Beep() error

	// Interrupt wakes a blocked WGetCh, which then returns ErrInterrupted.
	// Safe to call from any goroutine.
	Interrupt()
}
