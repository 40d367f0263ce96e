package native

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ncursesw/internal/handle"
	"github.com/dshills/ncursesw/internal/mmask"
)

// sizedScreen is a simulation screen that keeps its size across Init.
type sizedScreen struct {
	tcell.SimulationScreen
	w, h int
}

func (s *sizedScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.SetSize(s.w, s.h)
	return nil
}

type testTerm struct {
	*TcellDriver
	screens []*sizedScreen
}

func (tt *testTerm) sim() *sizedScreen {
	return tt.screens[0]
}

func newTestTerm(t *testing.T, w, h int, opts ...TcellOption) *testTerm {
	t.Helper()

	tt := &testTerm{}
	factory := func(string) (tcell.Screen, error) {
		s := &sizedScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8"), w: w, h: h}
		tt.screens = append(tt.screens, s)
		return s, nil
	}
	tt.TcellDriver = NewTcellDriver(append([]TcellOption{WithScreenFactory(factory)}, opts...)...)
	return tt
}

func startTestTerm(t *testing.T, w, h int, opts ...TcellOption) (*testTerm, handle.Handle) {
	t.Helper()

	tt := newTestTerm(t, w, h, opts...)
	std, err := tt.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		_ = tt.End()
	})
	return tt, std
}

func screenText(s tcell.SimulationScreen, y, x, n int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i := 0; i < n; i++ {
		c := cells[y*w+x+i]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func windowText(d *TcellDriver, h handle.Handle, y, x, n int) string {
	w := d.windows[h]
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(w.cell(y, x+i).r)
	}
	return b.String()
}

func TestTcellDriverLifecycle(t *testing.T) {
	tt := newTestTerm(t, 40, 12)

	if _, err := tt.NewWin(1, 1, 0, 0); !errors.Is(err, ErrNotStarted) {
		t.Errorf("NewWin before Init error = %v, want ErrNotStarted", err)
	}

	std, err := tt.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if std.Kind() != handle.KindWindow {
		t.Errorf("stdscr kind = %v, want window", std.Kind())
	}
	if tt.Lines() != 12 || tt.Cols() != 40 {
		t.Errorf("size = %dx%d, want 12x40", tt.Lines(), tt.Cols())
	}
	if _, err := tt.Init(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Init error = %v, want ErrAlreadyStarted", err)
	}

	if err := tt.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if err := tt.End(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("second End error = %v, want ErrNotStarted", err)
	}
	if _, err := tt.Init(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Init after End error = %v, want ErrAlreadyStarted", err)
	}
	if _, _, err := tt.WinSize(std); !errors.Is(err, ErrNotStarted) {
		t.Errorf("WinSize after End error = %v, want ErrNotStarted", err)
	}
}

func TestTcellDriverInitFactoryError(t *testing.T) {
	boom := errors.New("no tty")
	d := NewTcellDriver(WithScreenFactory(func(string) (tcell.Screen, error) {
		return nil, boom
	}))

	_, err := d.Init()
	if !errors.Is(err, boom) {
		t.Fatalf("Init() error = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "creating screen") {
		t.Errorf("error %q lacks context", err)
	}
}

func TestTcellDriverWriteFits(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	win, err := tt.NewWin(1, 3, 0, 0)
	if err != nil {
		t.Fatalf("NewWin() error = %v", err)
	}

	if err := tt.MvWAddStr(win, 0, 0, "Hello"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("MvWAddStr overflow error = %v, want ErrOutOfBounds", err)
	}
	if got := windowText(tt.TcellDriver, win, 0, 0, 3); got != "   " {
		t.Errorf("buffer after failed write = %q, want untouched", got)
	}

	if err := tt.MvWAddStr(win, 0, 0, "Hey"); err != nil {
		t.Fatalf("MvWAddStr exact fit error = %v", err)
	}
	if got := windowText(tt.TcellDriver, win, 0, 0, 3); got != "Hey" {
		t.Errorf("buffer = %q, want %q", got, "Hey")
	}

	if err := tt.MvWAddStr(win, 0, 3, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("origin past edge error = %v, want ErrOutOfBounds", err)
	}
	if err := tt.MvWAddStr(win, -1, 0, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("negative origin error = %v, want ErrOutOfBounds", err)
	}
}

func TestTcellDriverWriteWraps(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	win, err := tt.NewWin(2, 4, 0, 0)
	if err != nil {
		t.Fatalf("NewWin() error = %v", err)
	}

	if err := tt.MvWAddStr(win, 0, 2, "abcd"); err != nil {
		t.Fatalf("MvWAddStr() error = %v", err)
	}
	if got := windowText(tt.TcellDriver, win, 0, 0, 4); got != "  ab" {
		t.Errorf("line 0 = %q, want %q", got, "  ab")
	}
	if got := windowText(tt.TcellDriver, win, 1, 0, 4); got != "cd  " {
		t.Errorf("line 1 = %q, want %q", got, "cd  ")
	}

	y, x, _ := tt.WinCursor(win)
	if y != 1 || x != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2)", y, x)
	}

	if err := tt.WAddStr(win, "\nz"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("newline past last line error = %v, want ErrOutOfBounds", err)
	}
}

func TestTcellDriverWriteWideRune(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	win, err := tt.NewWin(2, 3, 0, 0)
	if err != nil {
		t.Fatalf("NewWin() error = %v", err)
	}

	// A wide rune at the last column moves to the next line.
	if err := tt.MvWAddStr(win, 0, 2, "世"); err != nil {
		t.Fatalf("MvWAddStr() error = %v", err)
	}
	w := tt.windows[win]
	if c := w.cell(1, 0); c.r != '世' {
		t.Errorf("wide rune at %q, want line 1", c.r)
	}
	if c := w.cell(1, 1); !c.cont {
		t.Error("right half of wide rune not marked")
	}
}

func TestTcellDriverRefreshShowsContent(t *testing.T) {
	tt, std := startTestTerm(t, 20, 5)

	if err := tt.MvWAddStr(std, 2, 3, "hi"); err != nil {
		t.Fatalf("MvWAddStr() error = %v", err)
	}
	if got := screenText(tt.sim(), 2, 3, 2); got == "hi" {
		t.Error("content visible before refresh")
	}
	if err := tt.WRefresh(std); err != nil {
		t.Fatalf("WRefresh() error = %v", err)
	}
	if got := screenText(tt.sim(), 2, 3, 2); got != "hi" {
		t.Errorf("screen = %q, want %q", got, "hi")
	}
}

func TestTcellDriverStagedRefresh(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	a, _ := tt.NewWin(1, 5, 0, 0)
	b, _ := tt.NewWin(1, 5, 1, 0)
	_ = tt.MvWAddStr(a, 0, 0, "one")
	_ = tt.MvWAddStr(b, 0, 0, "two")

	if err := tt.WNOutRefresh(a); err != nil {
		t.Fatalf("WNOutRefresh(a) error = %v", err)
	}
	if err := tt.WNOutRefresh(b); err != nil {
		t.Fatalf("WNOutRefresh(b) error = %v", err)
	}
	if got := screenText(tt.sim(), 0, 0, 3); got == "one" {
		t.Error("staged content visible before DoUpdate")
	}

	if err := tt.DoUpdate(); err != nil {
		t.Fatalf("DoUpdate() error = %v", err)
	}
	if got := screenText(tt.sim(), 0, 0, 3); got != "one" {
		t.Errorf("line 0 = %q, want one", got)
	}
	if got := screenText(tt.sim(), 1, 0, 3); got != "two" {
		t.Errorf("line 1 = %q, want two", got)
	}
}

func TestTcellDriverDerivedWindows(t *testing.T) {
	tt, std := startTestTerm(t, 20, 5)

	sub, err := tt.DerWin(std, 2, 3, 1, 1)
	if err != nil {
		t.Fatalf("DerWin() error = %v", err)
	}
	if err := tt.MvWAddStr(sub, 0, 0, "xy"); err != nil {
		t.Fatalf("MvWAddStr(sub) error = %v", err)
	}
	if got := windowText(tt.TcellDriver, std, 1, 1, 2); got != "xy" {
		t.Errorf("parent sees %q, want shared storage", got)
	}
	y, x, _ := tt.WinBegin(sub)
	if y != 1 || x != 1 {
		t.Errorf("sub begin = (%d,%d), want (1,1)", y, x)
	}

	if _, err := tt.DerWin(std, 2, 3, 4, 18); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("DerWin outside parent error = %v, want ErrOutOfBounds", err)
	}
	if err := tt.DelWin(std); !errors.Is(err, ErrBusy) {
		t.Errorf("DelWin(stdscr) error = %v, want ErrBusy", err)
	}

	top, _ := tt.NewWin(3, 6, 0, 0)
	child, _ := tt.DerWin(top, 1, 2, 0, 0)
	if err := tt.DelWin(top); err != nil {
		t.Fatalf("DelWin(top) error = %v", err)
	}
	if _, _, err := tt.WinSize(child); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("derived window after parent release error = %v, want ErrUnknownHandle", err)
	}
}

func TestTcellDriverChgAt(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	win, _ := tt.NewWin(1, 6, 0, 0)
	if err := tt.MvWChgAt(win, 0, 2, -1, AttrBold, 0); err != nil {
		t.Fatalf("MvWChgAt() error = %v", err)
	}
	w := tt.windows[win]
	for x := 0; x < 6; x++ {
		bold := w.cell(0, x).attr&AttrBold != 0
		if bold != (x >= 2) {
			t.Errorf("cell %d bold = %v", x, bold)
		}
	}

	if err := tt.MvWChgAt(win, 0, 6, 1, AttrBold, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("MvWChgAt past edge error = %v, want ErrOutOfBounds", err)
	}
}

func TestTcellDriverBoxAndErase(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	win, _ := tt.NewWin(3, 4, 0, 0)
	if err := tt.Box(win, 0, 0); err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	w := tt.windows[win]
	if w.cell(0, 0).r != tcell.RuneULCorner || w.cell(2, 3).r != tcell.RuneLRCorner {
		t.Error("box corners not drawn")
	}
	if w.cell(1, 0).r != tcell.RuneVLine || w.cell(0, 1).r != tcell.RuneHLine {
		t.Error("box edges not drawn")
	}

	if err := tt.WErase(win); err != nil {
		t.Fatalf("WErase() error = %v", err)
	}
	if got := windowText(tt.TcellDriver, win, 0, 0, 4); got != "    " {
		t.Errorf("after erase = %q", got)
	}

	tiny, _ := tt.NewWin(1, 1, 4, 0)
	if err := tt.Box(tiny, 0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Box on 1x1 error = %v, want ErrOutOfBounds", err)
	}
}

func TestTcellDriverRipOffLines(t *testing.T) {
	tt := newTestTerm(t, 20, 6)

	if err := tt.RipOffLine(true); err != nil {
		t.Fatalf("RipOffLine(top) error = %v", err)
	}
	if err := tt.RipOffLine(false); err != nil {
		t.Fatalf("RipOffLine(bottom) error = %v", err)
	}
	if err := tt.RipOffLine(true); !errors.Is(err, ErrRipoffLimit) {
		t.Errorf("second top ripoff error = %v, want ErrRipoffLimit", err)
	}

	std, err := tt.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = tt.End() }()

	if err := tt.RipOffLine(true); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("RipOffLine after Init error = %v, want ErrAlreadyStarted", err)
	}
	if tt.Lines() != 4 {
		t.Errorf("Lines() = %d, want 4", tt.Lines())
	}

	top, err := tt.RippedWindow(true)
	if err != nil {
		t.Fatalf("RippedWindow(top) error = %v", err)
	}
	bottom, err := tt.RippedWindow(false)
	if err != nil {
		t.Fatalf("RippedWindow(bottom) error = %v", err)
	}

	_ = tt.MvWAddStr(top, 0, 0, "T")
	_ = tt.MvWAddStr(bottom, 0, 0, "B")
	_ = tt.MvWAddStr(std, 0, 0, "S")
	_ = tt.WNOutRefresh(top)
	_ = tt.WNOutRefresh(bottom)
	_ = tt.WNOutRefresh(std)
	_ = tt.DoUpdate()

	for row, want := range map[int]string{0: "T", 1: "S", 5: "B"} {
		if got := screenText(tt.sim(), row, 0, 1); got != want {
			t.Errorf("row %d = %q, want %q", row, got, want)
		}
	}

	if err := tt.DelWin(top); !errors.Is(err, ErrBusy) {
		t.Errorf("DelWin(ripped) error = %v, want ErrBusy", err)
	}
}

func TestTcellDriverPanels(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	if _, ok := tt.PanelAbove(handle.Handle{}); ok {
		t.Error("empty stack has a bottom panel")
	}

	w1, _ := tt.NewWin(2, 5, 0, 0)
	w2, _ := tt.NewWin(2, 5, 1, 1)
	p1, err := tt.NewPanel(w1)
	if err != nil {
		t.Fatalf("NewPanel(w1) error = %v", err)
	}
	p2, _ := tt.NewPanel(w2)

	if _, err := tt.NewPanel(w1); !errors.Is(err, ErrBusy) {
		t.Errorf("second panel on window error = %v, want ErrBusy", err)
	}
	if bottom, _ := tt.PanelAbove(handle.Handle{}); bottom != p1 {
		t.Errorf("bottom = %v, want %v", bottom, p1)
	}
	if top, _ := tt.PanelBelow(handle.Handle{}); top != p2 {
		t.Errorf("top = %v, want %v", top, p2)
	}
	if above, ok := tt.PanelAbove(p1); !ok || above != p2 {
		t.Errorf("above p1 = %v, %v", above, ok)
	}
	if _, ok := tt.PanelAbove(p2); ok {
		t.Error("top panel has a panel above")
	}

	if err := tt.TopPanel(p1); err != nil {
		t.Fatalf("TopPanel() error = %v", err)
	}
	if top, _ := tt.PanelBelow(handle.Handle{}); top != p1 {
		t.Errorf("top after raise = %v, want %v", top, p1)
	}

	if err := tt.HidePanel(p1); err != nil {
		t.Fatalf("HidePanel() error = %v", err)
	}
	if hidden, _ := tt.PanelHidden(p1); !hidden {
		t.Error("panel not hidden")
	}
	if top, _ := tt.PanelBelow(handle.Handle{}); top != p2 {
		t.Errorf("top with p1 hidden = %v, want %v", top, p2)
	}
	if err := tt.ShowPanel(p1); err != nil {
		t.Fatalf("ShowPanel() error = %v", err)
	}
	if hidden, _ := tt.PanelHidden(p1); hidden {
		t.Error("panel still hidden")
	}

	if err := tt.DelWin(w1); !errors.Is(err, ErrBusy) {
		t.Errorf("DelWin with panel error = %v, want ErrBusy", err)
	}
	if got, _ := tt.PanelWindow(p2); got != w2 {
		t.Errorf("PanelWindow = %v, want %v", got, w2)
	}

	if err := tt.MovePanel(p2, 2, 3); err != nil {
		t.Fatalf("MovePanel() error = %v", err)
	}
	if y, x, _ := tt.WinBegin(w2); y != 2 || x != 3 {
		t.Errorf("moved window begin = (%d,%d), want (2,3)", y, x)
	}

	_ = tt.MvWAddStr(w2, 0, 0, "p2")
	if err := tt.UpdatePanels(); err != nil {
		t.Fatalf("UpdatePanels() error = %v", err)
	}
	_ = tt.DoUpdate()
	if got := screenText(tt.sim(), 2, 3, 2); got != "p2" {
		t.Errorf("panel content = %q, want p2", got)
	}

	if err := tt.DelPanel(p1); err != nil {
		t.Fatalf("DelPanel() error = %v", err)
	}
	if err := tt.DelWin(w1); err != nil {
		t.Errorf("DelWin after DelPanel error = %v", err)
	}
}

func TestTcellDriverScreens(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	scr, err := tt.NewScreen("xterm")
	if err != nil {
		t.Fatalf("NewScreen() error = %v", err)
	}
	if len(tt.screens) != 2 {
		t.Fatalf("factory calls = %d, want 2", len(tt.screens))
	}
	if err := tt.SetTerm(scr); err != nil {
		t.Fatalf("SetTerm() error = %v", err)
	}
	if err := tt.DelScreen(tt.initial.id); !errors.Is(err, ErrBusy) {
		t.Errorf("DelScreen(initial) error = %v, want ErrBusy", err)
	}
	if err := tt.DelScreen(scr); err != nil {
		t.Fatalf("DelScreen() error = %v", err)
	}
	if tt.cur != tt.initial {
		t.Error("current screen not restored after deleting it")
	}
	if err := tt.SetTerm(scr); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("SetTerm(deleted) error = %v, want ErrUnknownHandle", err)
	}
}

func TestTcellDriverGetChKeys(t *testing.T) {
	tt, std := startTestTerm(t, 20, 5)

	tests := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyRune, 'a', 'a'},
		{tcell.KeyEnter, 0, '\n'},
		{tcell.KeyUp, 0, KeyUp},
		{tcell.KeyPgDn, 0, KeyNPage},
		{tcell.KeyBacktab, 0, KeyBTab},
		{tcell.KeyF5, 0, KeyF(5)},
		{tcell.KeyRune, 'é', 'é'},
	}

	for _, tc := range tests {
		tt.sim().InjectKey(tc.key, tc.r, tcell.ModNone)
		got, err := tt.WGetCh(std)
		if err != nil {
			t.Fatalf("WGetCh() error = %v", err)
		}
		if got != tc.want {
			t.Errorf("key %v/%q = %#o, want %#o", tc.key, tc.r, got, tc.want)
		}
	}
}

func TestTcellDriverInterrupt(t *testing.T) {
	tt, std := startTestTerm(t, 20, 5)

	done := make(chan error, 1)
	go func() {
		_, err := tt.WGetCh(std)
		done <- err
	}()

	tt.Interrupt()

	select {
	case err := <-done:
		if !errors.Is(err, ErrInterrupted) {
			t.Errorf("WGetCh() error = %v, want ErrInterrupted", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WGetCh not woken by Interrupt")
	}
}

func TestTcellDriverResize(t *testing.T) {
	tt := newTestTerm(t, 20, 6)
	_ = tt.RipOffLine(false)
	std, err := tt.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = tt.End() }()

	tt.sim().SetSize(30, 10)
	_ = tt.sim().PostEvent(tcell.NewEventResize(30, 10))

	key, err := tt.WGetCh(std)
	if err != nil {
		t.Fatalf("WGetCh() error = %v", err)
	}
	if key != KeyResize {
		t.Fatalf("key = %#o, want KeyResize", key)
	}
	if tt.Lines() != 9 || tt.Cols() != 30 {
		t.Errorf("size after resize = %dx%d, want 9x30", tt.Lines(), tt.Cols())
	}
	rip, _ := tt.RippedWindow(false)
	if y, _, _ := tt.WinBegin(rip); y != 9 {
		t.Errorf("bottom ripoff row = %d, want 9", y)
	}
}

func TestTcellDriverMouseClicks(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tt, std := startTestTerm(t, 20, 5, WithClock(func() time.Time { return now }))

	want := mmask.Bits(1, mmask.Pressed|mmask.Released|mmask.Clicked|mmask.DoubleClicked)
	applied, old, err := tt.MouseMask(want)
	if err != nil {
		t.Fatalf("MouseMask() error = %v", err)
	}
	if applied != want || old != 0 {
		t.Errorf("MouseMask() = %#x, %#x; want %#x, 0", applied, old, want)
	}

	next := func() MouseEvent {
		t.Helper()
		key, err := tt.WGetCh(std)
		if err != nil || key != KeyMouse {
			t.Fatalf("WGetCh() = %#o, %v; want KeyMouse", key, err)
		}
		ev, err := tt.GetMouse()
		if err != nil {
			t.Fatalf("GetMouse() error = %v", err)
		}
		return ev
	}

	tt.sim().InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	ev := next()
	if ev.X != 4 || ev.Y != 2 || ev.BState != mmask.Bits(1, mmask.Pressed) {
		t.Errorf("press = %+v", ev)
	}

	tt.sim().InjectMouse(4, 2, tcell.ButtonNone, tcell.ModNone)
	if ev := next(); ev.BState != mmask.Bits(1, mmask.Clicked) {
		t.Errorf("first release bstate = %#x, want clicked", ev.BState)
	}

	tt.sim().InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	next()
	tt.sim().InjectMouse(4, 2, tcell.ButtonNone, tcell.ModShift)
	ev = next()
	if ev.BState != mmask.Bits(1, mmask.DoubleClicked)|mmask.Shift {
		t.Errorf("second release bstate = %#x, want double click with shift", ev.BState)
	}

	if _, err := tt.GetMouse(); !errors.Is(err, ErrNoMouseEvent) {
		t.Errorf("GetMouse on empty queue error = %v, want ErrNoMouseEvent", err)
	}
}

func TestTcellDriverMouseMaskFilters(t *testing.T) {
	tt, std := startTestTerm(t, 20, 5)

	if _, _, err := tt.MouseMask(mmask.Bits(1, mmask.Released)); err != nil {
		t.Fatalf("MouseMask() error = %v", err)
	}

	// Press and motion are outside the mask; only the release and the key
	// come through.
	tt.sim().InjectMouse(1, 1, tcell.Button1, tcell.ModNone)
	tt.sim().InjectMouse(3, 1, tcell.Button1, tcell.ModNone)
	tt.sim().InjectMouse(3, 1, tcell.ButtonNone, tcell.ModNone)
	tt.sim().InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	key, err := tt.WGetCh(std)
	if err != nil || key != KeyMouse {
		t.Fatalf("WGetCh() = %#o, %v; want KeyMouse", key, err)
	}
	ev, _ := tt.GetMouse()
	if ev.BState != mmask.Bits(1, mmask.Released) {
		t.Errorf("bstate = %#x, want release", ev.BState)
	}

	key, err = tt.WGetCh(std)
	if err != nil || key != 'q' {
		t.Errorf("WGetCh() = %#o, %v; want q", key, err)
	}
}

func TestTcellDriverCursSet(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	old, err := tt.CursSet(0)
	if err != nil || old != 1 {
		t.Errorf("CursSet(0) = %d, %v; want 1, nil", old, err)
	}
	old, err = tt.CursSet(2)
	if err != nil || old != 0 {
		t.Errorf("CursSet(2) = %d, %v; want 0, nil", old, err)
	}
	if _, err := tt.CursSet(3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CursSet(3) error = %v, want ErrInvalidArgument", err)
	}
}

func TestTcellDriverInitPair(t *testing.T) {
	tt, _ := startTestTerm(t, 20, 5)

	if err := tt.InitPair(1, ColorRed, ColorDefault); err != nil {
		t.Fatalf("InitPair() error = %v", err)
	}
	if err := tt.InitPair(0, ColorRed, ColorBlack); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("InitPair(0) error = %v, want ErrInvalidArgument", err)
	}

	fg, bg, _ := tt.style(AttrBold, 1).Decompose()
	if fg != tcell.PaletteColor(1) || bg != tcell.ColorDefault {
		t.Errorf("pair colors = %v/%v", fg, bg)
	}
}
