package main

import (
	"fmt"
	"strings"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/mouse"
)

var keyNames = map[ncursesw.Key]string{
	ncursesw.KeyDown:      "down",
	ncursesw.KeyUp:        "up",
	ncursesw.KeyLeft:      "left",
	ncursesw.KeyRight:     "right",
	ncursesw.KeyHome:      "home",
	ncursesw.KeyEnd:       "end",
	ncursesw.KeyBackspace: "backspace",
	ncursesw.KeyDC:        "delete",
	ncursesw.KeyIC:        "insert",
	ncursesw.KeyNPage:     "page-down",
	ncursesw.KeyPPage:     "page-up",
	ncursesw.KeyEnter:     "enter",
	ncursesw.KeyBTab:      "backtab",
	ncursesw.KeyResize:    "resize",
}

// describe renders one input event for the event list.
func describe(ev ncursesw.Event) string {
	if ev.IsMouse() {
		return describeMouse(ev.Mouse)
	}

	k := ev.Key
	if name, ok := keyNames[k]; ok {
		return fmt.Sprintf("key %-10s %#o", name, k)
	}
	for n := 1; n <= 12; n++ {
		if k == ncursesw.KeyF(n) {
			return fmt.Sprintf("key f%-9d %#o", n, k)
		}
	}
	switch {
	case k == '\t':
		return fmt.Sprintf("key %-10s %d", "tab", k)
	case k == 0x1b:
		return fmt.Sprintf("key %-10s %d", "escape", k)
	case k >= 0 && k < 0x20:
		return fmt.Sprintf("key ^%-9c %d", rune(k)+'@', k)
	case k == 0x7f:
		return fmt.Sprintf("key %-10s %d", "^?", k)
	default:
		return fmt.Sprintf("key %-10q %d", rune(k), k)
	}
}

func describeMouse(m *mouse.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mouse %s", m.Origin)

	if m.Position && len(m.States) == 0 {
		b.WriteString(" move")
	}
	for _, st := range m.States {
		fmt.Fprintf(&b, " %s", st)
	}
	if m.Modifiers != mouse.ModNone {
		fmt.Fprintf(&b, " [%s]", m.Modifiers)
	}
	fmt.Fprintf(&b, " raw=%#x", uint32(m.Raw))
	return b.String()
}
