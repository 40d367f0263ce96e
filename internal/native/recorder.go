package native

import (
	"sync"
	"time"

	"github.com/dshills/ncursesw/internal/handle"
)

// Release records one call to a releasing primitive.
type Release struct {
	Op     string
	Handle handle.Handle
}

// Recorder decorates a Driver with call accounting and failure injection.
type Recorder struct {
	Driver

	mu       sync.Mutex
	calls    map[string]int
	releases []Release
	failures map[string]error
}

// NewRecorder wraps d.
func NewRecorder(d Driver) *Recorder {
	return &Recorder{
		Driver:   d,
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

var _ Driver = (*Recorder)(nil)

// Fail makes every later call to op return err without reaching the
// wrapped driver. A nil err clears the injection.
func (r *Recorder) Fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		delete(r.failures, op)
		return
	}
	r.failures[op] = err
}

// Calls returns how often op was invoked, including injected failures.
func (r *Recorder) Calls(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

// Releases returns the releasing primitives in call order.
func (r *Recorder) Releases() []Release {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Release(nil), r.releases...)
}

// ReleaseCount counts recorded releases of h.
func (r *Recorder) ReleaseCount(h handle.Handle) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, rel := range r.releases {
		if rel.Handle == h {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls. Injected failures stay.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = make(map[string]int)
	r.releases = nil
}

func (r *Recorder) enter(op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls[op]++
	return r.failures[op]
}

func (r *Recorder) release(op string, h handle.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls[op]++
	r.releases = append(r.releases, Release{Op: op, Handle: h})
	return r.failures[op]
}

func (r *Recorder) Init() (handle.Handle, error) {
	if err := r.enter("Init"); err != nil {
		return handle.Handle{}, err
	}
	return r.Driver.Init()
}

func (r *Recorder) End() error {
	if err := r.release("End", handle.Handle{}); err != nil {
		return err
	}
	return r.Driver.End()
}

func (r *Recorder) RipOffLine(top bool) error {
	if err := r.enter("RipOffLine"); err != nil {
		return err
	}
	return r.Driver.RipOffLine(top)
}

func (r *Recorder) NewScreen(term string) (handle.Handle, error) {
	if err := r.enter("NewScreen"); err != nil {
		return handle.Handle{}, err
	}
	return r.Driver.NewScreen(term)
}

func (r *Recorder) SetTerm(scr handle.Handle) error {
	if err := r.enter("SetTerm"); err != nil {
		return err
	}
	return r.Driver.SetTerm(scr)
}

func (r *Recorder) DelScreen(scr handle.Handle) error {
	if err := r.release("DelScreen", scr); err != nil {
		return err
	}
	return r.Driver.DelScreen(scr)
}

func (r *Recorder) NewWin(lines, cols, y, x int) (handle.Handle, error) {
	if err := r.enter("NewWin"); err != nil {
		return handle.Handle{}, err
	}
	return r.Driver.NewWin(lines, cols, y, x)
}

func (r *Recorder) DerWin(parent handle.Handle, lines, cols, y, x int) (handle.Handle, error) {
	if err := r.enter("DerWin"); err != nil {
		return handle.Handle{}, err
	}
	return r.Driver.DerWin(parent, lines, cols, y, x)
}

func (r *Recorder) DelWin(win handle.Handle) error {
	if err := r.release("DelWin", win); err != nil {
		return err
	}
	return r.Driver.DelWin(win)
}

func (r *Recorder) WMove(win handle.Handle, y, x int) error {
	if err := r.enter("WMove"); err != nil {
		return err
	}
	return r.Driver.WMove(win, y, x)
}

func (r *Recorder) WAttrSet(win handle.Handle, attr Attr, pair int16) error {
	if err := r.enter("WAttrSet"); err != nil {
		return err
	}
	return r.Driver.WAttrSet(win, attr, pair)
}

func (r *Recorder) MvWAddStr(win handle.Handle, y, x int, s string) error {
	if err := r.enter("MvWAddStr"); err != nil {
		return err
	}
	return r.Driver.MvWAddStr(win, y, x, s)
}

func (r *Recorder) WAddStr(win handle.Handle, s string) error {
	if err := r.enter("WAddStr"); err != nil {
		return err
	}
	return r.Driver.WAddStr(win, s)
}

func (r *Recorder) MvWChgAt(win handle.Handle, y, x, n int, attr Attr, pair int16) error {
	if err := r.enter("MvWChgAt"); err != nil {
		return err
	}
	return r.Driver.MvWChgAt(win, y, x, n, attr, pair)
}

func (r *Recorder) WErase(win handle.Handle) error {
	if err := r.enter("WErase"); err != nil {
		return err
	}
	return r.Driver.WErase(win)
}

func (r *Recorder) Box(win handle.Handle, vert, horiz rune) error {
	if err := r.enter("Box"); err != nil {
		return err
	}
	return r.Driver.Box(win, vert, horiz)
}

func (r *Recorder) WRefresh(win handle.Handle) error {
	if err := r.enter("WRefresh"); err != nil {
		return err
	}
	return r.Driver.WRefresh(win)
}

func (r *Recorder) WNOutRefresh(win handle.Handle) error {
	if err := r.enter("WNOutRefresh"); err != nil {
		return err
	}
	return r.Driver.WNOutRefresh(win)
}

func (r *Recorder) DoUpdate() error {
	if err := r.enter("DoUpdate"); err != nil {
		return err
	}
	return r.Driver.DoUpdate()
}

func (r *Recorder) WGetCh(win handle.Handle) (Key, error) {
	if err := r.enter("WGetCh"); err != nil {
		return 0, err
	}
	return r.Driver.WGetCh(win)
}

func (r *Recorder) GetMouse() (MouseEvent, error) {
	if err := r.enter("GetMouse"); err != nil {
		return MouseEvent{}, err
	}
	return r.Driver.GetMouse()
}

func (r *Recorder) MouseMask(newmask uint32) (uint32, uint32, error) {
	if err := r.enter("MouseMask"); err != nil {
		return 0, 0, err
	}
	return r.Driver.MouseMask(newmask)
}

func (r *Recorder) SetMouseInterval(d time.Duration) time.Duration {
	_ = r.enter("SetMouseInterval")
	return r.Driver.SetMouseInterval(d)
}

func (r *Recorder) NewPanel(win handle.Handle) (handle.Handle, error) {
	if err := r.enter("NewPanel"); err != nil {
		return handle.Handle{}, err
	}
	return r.Driver.NewPanel(win)
}

func (r *Recorder) DelPanel(pan handle.Handle) error {
	if err := r.release("DelPanel", pan); err != nil {
		return err
	}
	return r.Driver.DelPanel(pan)
}

func (r *Recorder) TopPanel(pan handle.Handle) error {
	if err := r.enter("TopPanel"); err != nil {
		return err
	}
	return r.Driver.TopPanel(pan)
}

func (r *Recorder) BottomPanel(pan handle.Handle) error {
	if err := r.enter("BottomPanel"); err != nil {
		return err
	}
	return r.Driver.BottomPanel(pan)
}

func (r *Recorder) HidePanel(pan handle.Handle) error {
	if err := r.enter("HidePanel"); err != nil {
		return err
	}
	return r.Driver.HidePanel(pan)
}

func (r *Recorder) ShowPanel(pan handle.Handle) error {
	if err := r.enter("ShowPanel"); err != nil {
		return err
	}
	return r.Driver.ShowPanel(pan)
}

func (r *Recorder) MovePanel(pan handle.Handle, y, x int) error {
	if err := r.enter("MovePanel"); err != nil {
		return err
	}
	return r.Driver.MovePanel(pan, y, x)
}

func (r *Recorder) UpdatePanels() error {
	if err := r.enter("UpdatePanels"); err != nil {
		return err
	}
	return r.Driver.UpdatePanels()
}

func (r *Recorder) InitPair(pair int16, fg, bg Color) error {
	if err := r.enter("InitPair"); err != nil {
		return err
	}
	return r.Driver.InitPair(pair, fg, bg)
}

func (r *Recorder) CursSet(visibility int) (int, error) {
	if err := r.enter("CursSet"); err != nil {
		return 0, err
	}
	return r.Driver.CursSet(visibility)
}

func (r *Recorder) Beep() error {
	if err := r.enter("Beep"); err != nil {
		return err
	}
	return r.Driver.Beep()
}
