package script

import (
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/mouse"
)

const windowType = "ncursesw.window"

var keyNames = map[string]ncursesw.Key{
	"KEY_DOWN":      ncursesw.KeyDown,
	"KEY_UP":        ncursesw.KeyUp,
	"KEY_LEFT":      ncursesw.KeyLeft,
	"KEY_RIGHT":     ncursesw.KeyRight,
	"KEY_HOME":      ncursesw.KeyHome,
	"KEY_END":       ncursesw.KeyEnd,
	"KEY_BACKSPACE": ncursesw.KeyBackspace,
	"KEY_DC":        ncursesw.KeyDC,
	"KEY_IC":        ncursesw.KeyIC,
	"KEY_NPAGE":     ncursesw.KeyNPage,
	"KEY_PPAGE":     ncursesw.KeyPPage,
	"KEY_ENTER":     ncursesw.KeyEnter,
	"KEY_BTAB":      ncursesw.KeyBTab,
	"KEY_MOUSE":     ncursesw.KeyMouse,
	"KEY_RESIZE":    ncursesw.KeyResize,
}

var attrNames = map[string]ncursesw.Attr{
	"A_NORMAL":    ncursesw.AttrNormal,
	"A_STANDOUT":  ncursesw.AttrStandout,
	"A_UNDERLINE": ncursesw.AttrUnderline,
	"A_REVERSE":   ncursesw.AttrReverse,
	"A_BLINK":     ncursesw.AttrBlink,
	"A_DIM":       ncursesw.AttrDim,
	"A_BOLD":      ncursesw.AttrBold,
	"A_ITALIC":    ncursesw.AttrItalic,
}

var colorNames = map[string]ncursesw.Color{
	"COLOR_DEFAULT": ncursesw.ColorDefault,
	"COLOR_BLACK":   ncursesw.ColorBlack,
	"COLOR_RED":     ncursesw.ColorRed,
	"COLOR_GREEN":   ncursesw.ColorGreen,
	"COLOR_YELLOW":  ncursesw.ColorYellow,
	"COLOR_BLUE":    ncursesw.ColorBlue,
	"COLOR_MAGENTA": ncursesw.ColorMagenta,
	"COLOR_CYAN":    ncursesw.ColorCyan,
	"COLOR_WHITE":   ncursesw.ColorWhite,
}

// Bind exposes sess to scripts: the stdscr global, window methods and
// the session functions.
func (s *State) Bind(sess *ncursesw.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	s.sess = sess
	L := s.L

	mt := L.NewTypeMetatable(windowType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), s.windowMethods()))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("window" + s.checkWindow(L, 1).Handle().String()))
		return 1
	}))

	L.SetGlobal("stdscr", s.pushWindow(L, sess.InitialWindow()))
	L.SetFuncs(L.Get(lua.GlobalsIndex).(*lua.LTable), map[string]lua.LGFunction{
		"newwin":        s.newwin,
		"doupdate":      s.doupdate,
		"update_panels": s.updatePanels,
		"lines":         s.lines,
		"cols":          s.cols,
		"beep":          s.beep,
		"init_pair":     s.initPair,
		"curs_set":      s.cursSet,
		"mouseinterval": s.mouseInterval,
		"mousemask":     s.mousemask,
		"KEY_F":         keyF,
	})

	for name, k := range keyNames {
		L.SetGlobal(name, lua.LNumber(k))
	}
	for name, a := range attrNames {
		L.SetGlobal(name, lua.LNumber(a))
	}
	for name, c := range colorNames {
		L.SetGlobal(name, lua.LNumber(c))
	}
	L.SetGlobal("ALL_MOUSE_EVENTS", lua.LNumber(mouse.AllMouseEvents))
	L.SetGlobal("REPORT_MOUSE_POSITION", lua.LNumber(mouse.ReportMousePosition))
	return nil
}

func (s *State) session(L *lua.LState) *ncursesw.Session {
	if s.sess == nil {
		s.raise(L, ErrNotBound)
	}
	return s.sess
}

func (s *State) pushWindow(L *lua.LState, w *ncursesw.Window) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = w
	L.SetMetatable(ud, L.GetTypeMetatable(windowType))
	return ud
}

func (s *State) checkWindow(L *lua.LState, n int) *ncursesw.Window {
	ud := L.CheckUserData(n)
	w, ok := ud.Value.(*ncursesw.Window)
	if !ok {
		L.ArgError(n, "window expected")
		return nil
	}
	return w
}

// checkUint reads a non-negative integer argument.
func checkUint(L *lua.LState, n int) uint {
	v := L.CheckInt(n)
	if v < 0 {
		L.ArgError(n, "must not be negative")
	}
	return uint(v)
}

func checkOrigin(L *lua.LState, n int) ncursesw.Origin {
	return ncursesw.Origin{Y: checkUint(L, n), X: checkUint(L, n+1)}
}

// checkRune reads the first rune of an optional string argument; zero
// when absent.
func checkRune(L *lua.LState, n int) rune {
	str := L.OptString(n, "")
	if str == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(str)
	return r
}

// check raises err in Lua when set.
func (s *State) check(L *lua.LState, err error) {
	if err != nil {
		s.raise(L, err)
	}
}

func (s *State) windowMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"mvaddstr": func(L *lua.LState) int {
			w := s.checkWindow(L, 1)
			s.check(L, w.MvAddStr(checkOrigin(L, 2), L.CheckString(4)))
			return 0
		},
		"addstr": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).AddStr(L.CheckString(2)))
			return 0
		},
		"move": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).Move(checkOrigin(L, 2)))
			return 0
		},
		"mvchgat": func(L *lua.LState) int {
			w := s.checkWindow(L, 1)
			o := checkOrigin(L, 2)
			n := L.CheckInt(4)
			attr := ncursesw.Attr(L.OptInt64(5, 0))
			pair := int16(L.OptInt(6, 0))
			s.check(L, w.MvChgAt(o, n, attr, pair))
			return 0
		},
		"attrset": func(L *lua.LState) int {
			w := s.checkWindow(L, 1)
			attr := ncursesw.Attr(L.CheckInt64(2))
			pair := int16(L.OptInt(3, 0))
			s.check(L, w.SetAttr(attr, pair))
			return 0
		},
		"erase": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).Erase())
			return 0
		},
		"box": func(L *lua.LState) int {
			w := s.checkWindow(L, 1)
			s.check(L, w.Box(checkRune(L, 2), checkRune(L, 3)))
			return 0
		},
		"refresh": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).Refresh())
			return 0
		},
		"noutrefresh": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).NOutRefresh())
			return 0
		},
		"size": func(L *lua.LState) int {
			sz, err := s.checkWindow(L, 1).Size()
			s.check(L, err)
			L.Push(lua.LNumber(sz.Lines))
			L.Push(lua.LNumber(sz.Cols))
			return 2
		},
		"begin": func(L *lua.LState) int {
			o, err := s.checkWindow(L, 1).Begin()
			s.check(L, err)
			L.Push(lua.LNumber(o.Y))
			L.Push(lua.LNumber(o.X))
			return 2
		},
		"cursor": func(L *lua.LState) int {
			o, err := s.checkWindow(L, 1).Cursor()
			s.check(L, err)
			L.Push(lua.LNumber(o.Y))
			L.Push(lua.LNumber(o.X))
			return 2
		},
		"enclose": func(L *lua.LState) int {
			L.Push(lua.LBool(s.checkWindow(L, 1).Encloses(checkOrigin(L, 2))))
			return 1
		},
		"subwin": func(L *lua.LState) int {
			w := s.checkWindow(L, 1)
			size := ncursesw.Size{Lines: checkUint(L, 2), Cols: checkUint(L, 3)}
			sub, err := w.SubWindow(size, checkOrigin(L, 4))
			s.check(L, err)
			L.Push(s.pushWindow(L, sub))
			return 1
		},
		"getch": s.getch,
		"close": func(L *lua.LState) int {
			s.check(L, s.checkWindow(L, 1).Close())
			return 0
		},
	}
}

// getch returns the key code and, for mouse events, a table describing
// the event.
func (s *State) getch(L *lua.LState) int {
	ev, err := s.checkWindow(L, 1).GetCh()
	s.check(L, err)

	L.Push(lua.LNumber(ev.Key))
	if !ev.IsMouse() {
		return 1
	}
	L.Push(mouseTable(L, ev.Mouse))
	return 2
}

func mouseTable(L *lua.LState, m *mouse.Event) *lua.LTable {
	t := L.CreateTable(0, 7)
	t.RawSetString("id", lua.LNumber(m.ID))
	t.RawSetString("y", lua.LNumber(m.Origin.Y()))
	t.RawSetString("x", lua.LNumber(m.Origin.X()))
	t.RawSetString("z", lua.LNumber(m.Origin.Z()))
	t.RawSetString("position", lua.LBool(m.Position))
	t.RawSetString("modifiers", lua.LString(m.Modifiers.String()))

	states := L.CreateTable(len(m.States), 0)
	for _, st := range m.States {
		e := L.CreateTable(0, 2)
		e.RawSetString("button", lua.LNumber(st.Button.Number()))
		e.RawSetString("event", lua.LString(st.Event.String()))
		states.Append(e)
	}
	t.RawSetString("states", states)
	return t
}

func (s *State) newwin(L *lua.LState) int {
	size := ncursesw.Size{Lines: checkUint(L, 1), Cols: checkUint(L, 2)}
	w, err := s.session(L).NewWindow(size, checkOrigin(L, 3))
	s.check(L, err)
	L.Push(s.pushWindow(L, w))
	return 1
}

func (s *State) doupdate(L *lua.LState) int {
	s.check(L, s.session(L).DoUpdate())
	return 0
}

func (s *State) updatePanels(L *lua.LState) int {
	s.check(L, s.session(L).UpdatePanels())
	return 0
}

func (s *State) lines(L *lua.LState) int {
	L.Push(lua.LNumber(s.session(L).Lines()))
	return 1
}

func (s *State) cols(L *lua.LState) int {
	L.Push(lua.LNumber(s.session(L).Cols()))
	return 1
}

func (s *State) beep(L *lua.LState) int {
	s.check(L, s.session(L).Beep())
	return 0
}

func (s *State) initPair(L *lua.LState) int {
	pair := int16(L.CheckInt(1))
	fg := ncursesw.Color(L.CheckInt(2))
	bg := ncursesw.Color(L.CheckInt(3))
	s.check(L, s.session(L).InitPair(pair, fg, bg))
	return 0
}

func (s *State) cursSet(L *lua.LState) int {
	old, err := s.session(L).CursorVisibility(L.CheckInt(1))
	s.check(L, err)
	L.Push(lua.LNumber(old))
	return 1
}

// mouseInterval takes and returns milliseconds.
func (s *State) mouseInterval(L *lua.LState) int {
	d := time.Duration(L.CheckInt(1)) * time.Millisecond
	old := s.session(L).MouseInterval(d)
	L.Push(lua.LNumber(old.Milliseconds()))
	return 1
}

// mousemask takes ALL_MOUSE_EVENTS and REPORT_MOUSE_POSITION requests and
// returns the native mask now in effect.
func (s *State) mousemask(L *lua.LState) int {
	var reqs []mouse.Mask
	for i := 1; i <= L.GetTop(); i++ {
		reqs = append(reqs, mouse.Mask(L.CheckInt(i)))
	}
	applied, err := s.session(L).SetMouseMask(reqs...)
	s.check(L, err)
	L.Push(lua.LNumber(applied))
	return 1
}

func keyF(L *lua.LState) int {
	L.Push(lua.LNumber(ncursesw.KeyF(L.CheckInt(1))))
	return 1
}
