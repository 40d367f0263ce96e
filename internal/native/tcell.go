package native

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/dshills/ncursesw/internal/handle"
	"github.com/dshills/ncursesw/internal/mmask"
)

// DefaultMouseInterval is the press/release window for click resolution.
const DefaultMouseInterval = 166 * time.Millisecond

// mouseQueueSize bounds events not yet collected with GetMouse.
const mouseQueueSize = 32

// ScreenFactory creates the tcell screen for a terminal. The term name is
// empty for the initial screen.
type ScreenFactory func(term string) (tcell.Screen, error)

// DefaultScreenFactory opens the controlling terminal described by $TERM.
func DefaultScreenFactory(string) (tcell.Screen, error) {
	return tcell.NewScreen()
}

// screen is the driver-side record behind a screen handle.
type screen struct {
	id   handle.Handle
	ts   tcell.Screen
	term string

	width, height int
	topStolen     int
	botStolen     int

	stdscr *window
	ripTop *window
	ripBot *window

	// virt holds what the next DoUpdate will show.
	virt    *canvas
	cursorY int
	cursorX int

	panels []*panel // bottom to top
}

type pressRecord struct {
	pos clickPos
	at  time.Time
}

type colorPair struct {
	fg, bg Color
}

// curses button number for each tcell button.
var buttonMap = []struct {
	tcell  tcell.ButtonMask
	curses int
}{
	{tcell.Button1, 1},
	{tcell.Button3, 2},
	{tcell.Button2, 3},
}

// TcellDriver implements Driver by emulating curses windows, panels and
// ripped-off lines on top of tcell screens.
type TcellDriver struct {
	mu sync.Mutex

	factory ScreenFactory
	now     func() time.Time

	next    uintptr
	screens map[handle.Handle]*screen
	windows map[handle.Handle]*window
	panels  map[handle.Handle]*panel
	order   []*screen
	initial *screen
	cur     *screen

	ripTop, ripBot bool
	started, ended bool

	pairs     map[int16]colorPair
	cursorVis int

	mask    uint32
	held    tcell.ButtonMask
	pressAt [mmask.Buttons + 1]pressRecord
	clicks  *clickTracker
	queue   []MouseEvent
}

// TcellOption configures a TcellDriver.
type TcellOption func(*TcellDriver)

// WithScreenFactory sets how tcell screens are created.
func WithScreenFactory(f ScreenFactory) TcellOption {
	return func(d *TcellDriver) {
		d.factory = f
	}
}

// WithClock sets the time source used for click resolution.
func WithClock(now func() time.Time) TcellOption {
	return func(d *TcellDriver) {
		d.now = now
	}
}

// NewTcellDriver creates a driver. The terminal is not touched until Init.
func NewTcellDriver(opts ...TcellOption) *TcellDriver {
	d := &TcellDriver{
		factory:   DefaultScreenFactory,
		now:       time.Now,
		screens:   make(map[handle.Handle]*screen),
		windows:   make(map[handle.Handle]*window),
		panels:    make(map[handle.Handle]*panel),
		pairs:     make(map[int16]colorPair),
		cursorVis: 1,
		clicks:    newClickTracker(DefaultMouseInterval),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ Driver = (*TcellDriver)(nil)

func (d *TcellDriver) alloc(kind handle.Kind) handle.Handle {
	d.next++
	return handle.New(kind, d.next)
}

func (d *TcellDriver) Init() (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.ended {
		return handle.Handle{}, ErrAlreadyStarted
	}

	scr, err := d.openScreen("")
	if err != nil {
		return handle.Handle{}, err
	}

	if d.ripTop {
		scr.topStolen = 1
	}
	if d.ripBot {
		scr.botStolen = 1
	}
	if scr.topStolen+scr.botStolen >= scr.height {
		d.closeScreen(scr)
		return handle.Handle{}, ErrRipoffLimit
	}

	d.layout(scr)
	if d.ripTop {
		scr.ripTop = d.newWindow(scr, nil, 1, scr.width, 0, 0)
		scr.ripTop.ripped = true
	}
	if d.ripBot {
		scr.ripBot = d.newWindow(scr, nil, 1, scr.width, scr.height-1, 0)
		scr.ripBot.ripped = true
	}

	d.initial, d.cur = scr, scr
	d.started = true
	return scr.stdscr.id, nil
}

// openScreen creates and initializes a tcell screen.
func (d *TcellDriver) openScreen(term string) (*screen, error) {
	ts, err := d.factory(term)
	if err != nil {
		return nil, errors.Wrap(err, "creating screen")
	}
	if err := ts.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing screen")
	}
	if d.mask != 0 {
		ts.EnableMouse()
	}

	w, h := ts.Size()
	scr := &screen{
		id:     d.alloc(handle.KindScreen),
		ts:     ts,
		term:   term,
		width:  w,
		height: h,
		virt:   newCanvas(h, w),
	}
	d.screens[scr.id] = scr
	d.order = append(d.order, scr)
	return scr, nil
}

// layout creates the standard screen window of scr.
func (d *TcellDriver) layout(scr *screen) {
	lines := scr.height - scr.topStolen - scr.botStolen
	scr.stdscr = d.newWindow(scr, nil, lines, scr.width, 0, 0)
}

func (d *TcellDriver) newWindow(scr *screen, parent *window, lines, cols, y, x int) *window {
	w := &window{
		id:    d.alloc(handle.KindWindow),
		scr:   scr,
		lines: lines,
		cols:  cols,
	}
	if parent == nil {
		w.store = newCanvas(lines, cols)
		w.begY, w.begX = y, x
	} else {
		w.parent = parent
		w.store = parent.store
		w.offY, w.offX = parent.offY+y, parent.offX+x
		w.begY, w.begX = parent.begY+y, parent.begX+x
		w.ripped = parent.ripped
		w.attr, w.pair = parent.attr, parent.pair
		parent.derived = append(parent.derived, w)
	}
	d.windows[w.id] = w
	return w
}

// closeScreen finalizes scr and forgets everything that lived on it.
func (d *TcellDriver) closeScreen(scr *screen) {
	scr.ts.Fini()
	for id, w := range d.windows {
		if w.scr == scr {
			delete(d.windows, id)
		}
	}
	for id, p := range d.panels {
		if p.win.scr == scr {
			delete(d.panels, id)
		}
	}
	delete(d.screens, scr.id)
	for i, s := range d.order {
		if s == scr {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *TcellDriver) End() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return ErrNotStarted
	}
	for i := len(d.order) - 1; i >= 0; i-- {
		d.closeScreen(d.order[i])
	}
	d.initial, d.cur = nil, nil
	d.queue = nil
	d.started = false
	d.ended = true
	return nil
}

func (d *TcellDriver) Lines() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cur == nil {
		return 0
	}
	return d.cur.stdscr.lines
}

func (d *TcellDriver) Cols() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cur == nil {
		return 0
	}
	return d.cur.width
}

func (d *TcellDriver) RipOffLine(top bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.ended {
		return ErrAlreadyStarted
	}
	slot := &d.ripBot
	if top {
		slot = &d.ripTop
	}
	if *slot {
		return ErrRipoffLimit
	}
	*slot = true
	return nil
}

func (d *TcellDriver) RippedWindow(top bool) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return handle.Handle{}, ErrNotStarted
	}
	w := d.initial.ripBot
	if top {
		w = d.initial.ripTop
	}
	if w == nil {
		return handle.Handle{}, ErrUnknownHandle
	}
	return w.id, nil
}

func (d *TcellDriver) CurrentScreen() (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return handle.Handle{}, ErrNotStarted
	}
	return d.cur.id, nil
}

func (d *TcellDriver) NewScreen(term string) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return handle.Handle{}, ErrNotStarted
	}
	scr, err := d.openScreen(term)
	if err != nil {
		return handle.Handle{}, err
	}
	d.layout(scr)
	return scr.id, nil
}

func (d *TcellDriver) screen(h handle.Handle) (*screen, error) {
	if !d.started {
		return nil, ErrNotStarted
	}
	scr, ok := d.screens[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return scr, nil
}

func (d *TcellDriver) SetTerm(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	scr, err := d.screen(h)
	if err != nil {
		return err
	}
	d.cur = scr
	return nil
}

func (d *TcellDriver) DelScreen(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	scr, err := d.screen(h)
	if err != nil {
		return err
	}
	// The initial screen goes away with End.
	if scr == d.initial {
		return ErrBusy
	}
	d.closeScreen(scr)
	if d.cur == scr {
		d.cur = d.initial
	}
	return nil
}

func (d *TcellDriver) window(h handle.Handle) (*window, error) {
	if !d.started {
		return nil, ErrNotStarted
	}
	w, ok := d.windows[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return w, nil
}

func (d *TcellDriver) NewWin(lines, cols, y, x int) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return handle.Handle{}, ErrNotStarted
	}
	if lines < 0 || cols < 0 || y < 0 || x < 0 {
		return handle.Handle{}, ErrInvalidArgument
	}
	if lines == 0 {
		lines = d.cur.stdscr.lines - y
	}
	if cols == 0 {
		cols = d.cur.width - x
	}
	if lines <= 0 || cols <= 0 {
		return handle.Handle{}, ErrInvalidArgument
	}
	return d.newWindow(d.cur, nil, lines, cols, y, x).id, nil
}

func (d *TcellDriver) DerWin(parent handle.Handle, lines, cols, y, x int) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.window(parent)
	if err != nil {
		return handle.Handle{}, err
	}
	if lines < 0 || cols < 0 || y < 0 || x < 0 {
		return handle.Handle{}, ErrInvalidArgument
	}
	if lines == 0 {
		lines = p.lines - y
	}
	if cols == 0 {
		cols = p.cols - x
	}
	if lines <= 0 || cols <= 0 || y+lines > p.lines || x+cols > p.cols {
		return handle.Handle{}, ErrOutOfBounds
	}
	return d.newWindow(p.scr, p, lines, cols, y, x).id, nil
}

func (d *TcellDriver) DelWin(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	if w == w.scr.stdscr || w == w.scr.ripTop || w == w.scr.ripBot {
		return ErrBusy
	}
	if w.hasPanel() {
		return ErrBusy
	}
	d.releaseWindow(w)
	if w.parent != nil {
		siblings := w.parent.derived
		for i, s := range siblings {
			if s == w {
				w.parent.derived = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (d *TcellDriver) releaseWindow(w *window) {
	for _, c := range w.derived {
		d.releaseWindow(c)
	}
	w.derived = nil
	delete(d.windows, w.id)
}

func (d *TcellDriver) WinSize(h handle.Handle) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return 0, 0, err
	}
	return w.lines, w.cols, nil
}

func (d *TcellDriver) WinBegin(h handle.Handle) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return 0, 0, err
	}
	return w.begY, w.begX, nil
}

func (d *TcellDriver) WinCursor(h handle.Handle) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return 0, 0, err
	}
	return w.curY, w.curX, nil
}

func (d *TcellDriver) WEnclose(h handle.Handle, y, x int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return false
	}
	top := w.absY()
	return y >= top && y < top+w.lines && x >= w.begX && x < w.begX+w.cols
}

func (d *TcellDriver) WMove(h handle.Handle, y, x int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	if y < 0 || x < 0 || y >= w.lines || x >= w.cols {
		return ErrOutOfBounds
	}
	w.curY, w.curX = y, x
	return nil
}

func (d *TcellDriver) WAttrSet(h handle.Handle, attr Attr, pair int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	if pair < 0 {
		return ErrInvalidArgument
	}
	w.attr, w.pair = attr, pair
	return nil
}

func (d *TcellDriver) MvWAddStr(h handle.Handle, y, x int, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	return addStr(w, y, x, s)
}

func (d *TcellDriver) WAddStr(h handle.Handle, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	return addStr(w, w.curY, w.curX, s)
}

type placement struct {
	pos   int
	r     rune
	width int
	comb  []rune
}

// addStr writes s at (y, x), wrapping at the right edge. Nothing is
// written unless all of s fits before the end of the window.
func addStr(w *window, y, x int, s string) error {
	if y < 0 || x < 0 || y >= w.lines || x >= w.cols {
		return ErrOutOfBounds
	}

	total := w.lines * w.cols
	pos := y*w.cols + x
	var plan []placement

	put := func(r rune, width int) bool {
		// A wide rune never straddles two lines.
		if width == 2 && pos%w.cols == w.cols-1 {
			if pos+1 > total {
				return false
			}
			plan = append(plan, placement{pos: pos, r: ' ', width: 1})
			pos++
		}
		if pos+width > total {
			return false
		}
		plan = append(plan, placement{pos: pos, r: r, width: width})
		pos += width
		return true
	}

	for _, r := range s {
		switch {
		case r == '\n':
			next := (pos/w.cols + 1) * w.cols
			for ; pos < next && pos < total; pos++ {
				plan = append(plan, placement{pos: pos, r: ' ', width: 1})
			}
			pos = next
			if pos > total {
				return ErrOutOfBounds
			}
			continue
		case r == '\t':
			for n := 8 - (pos%w.cols)%8; n > 0; n-- {
				if !put(' ', 1) {
					return ErrOutOfBounds
				}
			}
			continue
		case r < 0x20 || r == 0x7f:
			if !put('^', 1) || !put(r^0x40, 1) {
				return ErrOutOfBounds
			}
			continue
		}

		width := runewidth.RuneWidth(r)
		if width == 0 {
			if len(plan) > 0 {
				last := &plan[len(plan)-1]
				last.comb = append(last.comb, r)
			}
			continue
		}
		if !put(r, width) {
			return ErrOutOfBounds
		}
	}

	for _, p := range plan {
		cy, cx := p.pos/w.cols, p.pos%w.cols
		if c := w.cell(cy, cx); c != nil {
			*c = cell{r: p.r, comb: p.comb, attr: w.attr, pair: w.pair}
		}
		if p.width == 2 {
			if c := w.cell(cy, cx+1); c != nil {
				*c = cell{cont: true, attr: w.attr, pair: w.pair}
			}
		}
	}

	if pos >= total {
		pos = total - 1
	}
	w.curY, w.curX = pos/w.cols, pos%w.cols
	w.touch()
	return nil
}

func (d *TcellDriver) MvWChgAt(h handle.Handle, y, x, n int, attr Attr, pair int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	if y < 0 || x < 0 || y >= w.lines || x >= w.cols {
		return ErrOutOfBounds
	}
	if pair < 0 {
		return ErrInvalidArgument
	}

	// A negative count runs to the end of the line.
	end := w.cols
	if n >= 0 && x+n < end {
		end = x + n
	}
	for cx := x; cx < end; cx++ {
		c := w.cell(y, cx)
		if c == nil {
			continue
		}
		c.attr, c.pair = attr, pair
	}
	w.curY, w.curX = y, x
	w.touch()
	return nil
}

func (d *TcellDriver) WErase(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	for y := 0; y < w.lines; y++ {
		for x := 0; x < w.cols; x++ {
			if c := w.cell(y, x); c != nil {
				*c = blank
			}
		}
	}
	w.curY, w.curX = 0, 0
	w.touch()
	return nil
}

func (d *TcellDriver) Box(h handle.Handle, vert, horiz rune) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	if w.lines < 2 || w.cols < 2 {
		return ErrOutOfBounds
	}
	if vert == 0 {
		vert = tcell.RuneVLine
	}
	if horiz == 0 {
		horiz = tcell.RuneHLine
	}

	set := func(y, x int, r rune) {
		if c := w.cell(y, x); c != nil {
			*c = cell{r: r, attr: w.attr, pair: w.pair}
		}
	}
	last, right := w.lines-1, w.cols-1
	for x := 1; x < right; x++ {
		set(0, x, horiz)
		set(last, x, horiz)
	}
	for y := 1; y < last; y++ {
		set(y, 0, vert)
		set(y, right, vert)
	}
	set(0, 0, tcell.RuneULCorner)
	set(0, right, tcell.RuneURCorner)
	set(last, 0, tcell.RuneLLCorner)
	set(last, right, tcell.RuneLRCorner)
	w.touch()
	return nil
}

func (d *TcellDriver) WRefresh(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	d.stage(w)
	d.flush(w.scr)
	return nil
}

func (d *TcellDriver) WNOutRefresh(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(h)
	if err != nil {
		return err
	}
	d.stage(w)
	return nil
}

func (d *TcellDriver) DoUpdate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return ErrNotStarted
	}
	d.flush(d.cur)
	return nil
}

// stage copies w into its screen's pending image, clipped to the terminal.
func (d *TcellDriver) stage(w *window) {
	scr := w.scr
	top := w.absY()
	for y := 0; y < w.lines; y++ {
		for x := 0; x < w.cols; x++ {
			src := w.cell(y, x)
			dst := scr.virt.at(top+y, w.begX+x)
			if src != nil && dst != nil {
				*dst = *src
			}
		}
	}
	scr.cursorY, scr.cursorX = top+w.curY, w.begX+w.curX
	w.dirty = false
}

// flush pushes the pending image of scr to the terminal.
func (d *TcellDriver) flush(scr *screen) {
	for y := 0; y < scr.virt.lines; y++ {
		for x := 0; x < scr.virt.cols; x++ {
			c := scr.virt.at(y, x)
			if c.cont {
				continue
			}
			scr.ts.SetContent(x, y, c.r, c.comb, d.style(c.attr, c.pair))
		}
	}
	if d.cursorVis == 0 {
		scr.ts.HideCursor()
	} else {
		scr.ts.ShowCursor(scr.cursorX, scr.cursorY)
	}
	scr.ts.Show()
}

func (d *TcellDriver) style(attr Attr, pair int16) tcell.Style {
	style := tcell.StyleDefault
	if p, ok := d.pairs[pair]; ok {
		style = style.Foreground(tcellColor(p.fg)).Background(tcellColor(p.bg))
	}
	if attr&(AttrReverse|AttrStandout) != 0 {
		style = style.Reverse(true)
	}
	if attr&AttrBold != 0 {
		style = style.Bold(true)
	}
	if attr&AttrDim != 0 {
		style = style.Dim(true)
	}
	if attr&AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attr&AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attr&AttrItalic != 0 {
		style = style.Italic(true)
	}
	return style
}

func tcellColor(c Color) tcell.Color {
	if c < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

func (d *TcellDriver) WGetCh(h handle.Handle) (Key, error) {
	d.mu.Lock()
	w, err := d.window(h)
	if err != nil {
		d.mu.Unlock()
		return 0, err
	}
	if w.dirty {
		d.stage(w)
		d.flush(w.scr)
	}
	scr := w.scr
	d.mu.Unlock()

	for {
		ev := scr.ts.PollEvent()

		d.mu.Lock()
		key, ok, err := d.translate(scr, ev)
		d.mu.Unlock()

		if err != nil || ok {
			return key, err
		}
	}
}

// translate turns a tcell event into a key code. ok is false for events
// that produce no input, such as mouse events outside the mask.
func (d *TcellDriver) translate(scr *screen, ev tcell.Event) (Key, bool, error) {
	switch e := ev.(type) {
	case nil:
		// PollEvent returns nil once the screen is finalized.
		return 0, false, ErrInterrupted
	case *tcell.EventInterrupt:
		return 0, false, ErrInterrupted
	case *tcell.EventKey:
		key, ok := translateKey(e)
		return key, ok, nil
	case *tcell.EventMouse:
		if d.queueMouse(scr, e) {
			return KeyMouse, true, nil
		}
	case *tcell.EventResize:
		w, h := e.Size()
		if w == scr.width && h == scr.height {
			return 0, false, nil
		}
		d.resize(scr, w, h)
		return KeyResize, true, nil
	}
	return 0, false, nil
}

func translateKey(e *tcell.EventKey) (Key, bool) {
	switch k := e.Key(); k {
	case tcell.KeyRune:
		r := e.Rune()
		if e.Modifiers()&tcell.ModCtrl != 0 && r >= '@' && r <= '~' {
			return Key(r & 0x1f), true
		}
		return Key(r), true
	case tcell.KeyEnter:
		return '\n', true
	case tcell.KeyTab:
		return '\t', true
	case tcell.KeyBacktab:
		return KeyBTab, true
	case tcell.KeyEscape:
		return 0x1b, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, true
	case tcell.KeyDelete:
		return KeyDC, true
	case tcell.KeyInsert:
		return KeyIC, true
	case tcell.KeyHome:
		return KeyHome, true
	case tcell.KeyEnd:
		return KeyEnd, true
	case tcell.KeyPgUp:
		return KeyPPage, true
	case tcell.KeyPgDn:
		return KeyNPage, true
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF64 {
			return KeyF(int(k-tcell.KeyF1) + 1), true
		}
		// Remaining control characters arrive as themselves.
		if k >= 0 && k < 0x20 {
			return Key(k), true
		}
		return 0, false
	}
}

// queueMouse converts tcell's button state into curses transition bits
// and queues the event if the mask selects any of them.
func (d *TcellDriver) queueMouse(scr *screen, e *tcell.EventMouse) bool {
	x, y := e.Position()
	btns := e.Buttons()
	now := d.now()
	pos := clickPos{y: y, x: x}

	var bstate uint32
	if btns&tcell.WheelUp != 0 {
		bstate |= mmask.Bits(4, mmask.Pressed)
	}
	if btns&tcell.WheelDown != 0 {
		bstate |= mmask.Bits(5, mmask.Pressed)
	}
	for _, b := range buttonMap {
		down := btns&b.tcell != 0
		was := d.held&b.tcell != 0
		switch {
		case down && !was:
			bstate |= mmask.Bits(b.curses, mmask.Pressed)
			d.pressAt[b.curses] = pressRecord{pos: pos, at: now}
		case !down && was:
			bstate |= d.release(b.curses, pos, now)
		}
	}
	d.held = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if bstate == 0 {
		bstate = mmask.ReportMousePosition
	}
	bstate &= d.mask
	if bstate == 0 {
		return false
	}

	mods := e.Modifiers()
	if mods&tcell.ModShift != 0 {
		bstate |= mmask.Shift
	}
	if mods&tcell.ModCtrl != 0 {
		bstate |= mmask.Ctrl
	}
	if mods&tcell.ModAlt != 0 {
		bstate |= mmask.Alt
	}

	if len(d.queue) == mouseQueueSize {
		d.queue = d.queue[1:]
	}
	d.queue = append(d.queue, MouseEvent{X: x, Y: y, BState: bstate})
	return true
}

// release resolves a button release into a click when it lands on the
// press position within the mouse interval and the mask asks for clicks.
func (d *TcellDriver) release(button int, pos clickPos, now time.Time) uint32 {
	press := d.pressAt[button]
	d.pressAt[button] = pressRecord{}

	clickBits := mmask.Bits(button, mmask.Clicked|mmask.DoubleClicked|mmask.TripleClicked)
	if d.mask&clickBits == 0 || press.pos != pos || !d.clicks.within(press.at, now) {
		d.clicks.reset()
		return mmask.Bits(button, mmask.Released)
	}

	switch d.clicks.recordClick(button, pos, now) {
	case 1:
		return mmask.Bits(button, mmask.Clicked)
	case 2:
		return mmask.Bits(button, mmask.DoubleClicked)
	default:
		return mmask.Bits(button, mmask.TripleClicked)
	}
}

func (d *TcellDriver) resize(scr *screen, w, h int) {
	scr.width, scr.height = w, h
	scr.virt.resize(h, w)

	lines := max(h-scr.topStolen-scr.botStolen, 1)
	std := scr.stdscr
	std.lines, std.cols = lines, w
	std.store.resize(lines, w)
	std.curY, std.curX = min(std.curY, lines-1), min(std.curX, w-1)

	for _, rip := range []*window{scr.ripTop, scr.ripBot} {
		if rip == nil {
			continue
		}
		rip.cols = w
		rip.store.resize(1, w)
		rip.curX = min(rip.curX, w-1)
	}
	if scr.ripBot != nil {
		scr.ripBot.begY = h - 1
	}
}

func (d *TcellDriver) GetMouse() (MouseEvent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.queue) == 0 {
		return MouseEvent{}, ErrNoMouseEvent
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, nil
}

func (d *TcellDriver) MouseMask(newmask uint32) (uint32, uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return 0, 0, ErrNotStarted
	}
	old := d.mask
	d.mask = newmask & (mmask.AllMouseEvents | mmask.ReportMousePosition)
	for _, scr := range d.order {
		if d.mask != 0 {
			scr.ts.EnableMouse()
		} else {
			scr.ts.DisableMouse()
		}
	}
	return d.mask, old, nil
}

func (d *TcellDriver) SetMouseInterval(interval time.Duration) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	old := d.clicks.maxTime
	d.clicks.maxTime = interval
	return old
}

func (d *TcellDriver) panel(h handle.Handle) (*panel, error) {
	if !d.started {
		return nil, ErrNotStarted
	}
	p, ok := d.panels[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return p, nil
}

func (d *TcellDriver) NewPanel(win handle.Handle) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.window(win)
	if err != nil {
		return handle.Handle{}, err
	}
	if w.panel != nil {
		return handle.Handle{}, ErrBusy
	}
	p := &panel{id: d.alloc(handle.KindPanel), win: w}
	w.panel = p
	d.panels[p.id] = p
	w.scr.panels = append(w.scr.panels, p)
	return p.id, nil
}

func (d *TcellDriver) DelPanel(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return err
	}
	unstack(p)
	p.win.panel = nil
	delete(d.panels, h)
	return nil
}

// unstack removes p from its screen's stack if present.
func unstack(p *panel) {
	scr := p.win.scr
	for i, q := range scr.panels {
		if q == p {
			scr.panels = append(scr.panels[:i], scr.panels[i+1:]...)
			return
		}
	}
}

func (d *TcellDriver) PanelWindow(h handle.Handle) (handle.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return handle.Handle{}, err
	}
	return p.win.id, nil
}

func (d *TcellDriver) PanelAbove(h handle.Handle) (handle.Handle, bool) {
	return d.neighbor(h, 1)
}

func (d *TcellDriver) PanelBelow(h handle.Handle) (handle.Handle, bool) {
	return d.neighbor(h, -1)
}

// neighbor walks the current screen's stack; dir is +1 for up.
func (d *TcellDriver) neighbor(h handle.Handle, dir int) (handle.Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return handle.Handle{}, false
	}
	stack := d.cur.panels
	if len(stack) == 0 {
		return handle.Handle{}, false
	}
	if h.IsZero() {
		if dir > 0 {
			return stack[0].id, true
		}
		return stack[len(stack)-1].id, true
	}
	for i, p := range stack {
		if p.id != h {
			continue
		}
		j := i + dir
		if j < 0 || j >= len(stack) {
			return handle.Handle{}, false
		}
		return stack[j].id, true
	}
	return handle.Handle{}, false
}

func (d *TcellDriver) TopPanel(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return err
	}
	unstack(p)
	p.hidden = false
	p.win.scr.panels = append(p.win.scr.panels, p)
	return nil
}

func (d *TcellDriver) BottomPanel(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return err
	}
	unstack(p)
	p.hidden = false
	p.win.scr.panels = append([]*panel{p}, p.win.scr.panels...)
	return nil
}

func (d *TcellDriver) HidePanel(h handle.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return err
	}
	unstack(p)
	p.hidden = true
	return nil
}

func (d *TcellDriver) ShowPanel(h handle.Handle) error {
	return d.TopPanel(h)
}

func (d *TcellDriver) PanelHidden(h handle.Handle) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return false, err
	}
	return p.hidden, nil
}

func (d *TcellDriver) MovePanel(h handle.Handle, y, x int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.panel(h)
	if err != nil {
		return err
	}
	if y < 0 || x < 0 || p.win.parent != nil {
		return ErrInvalidArgument
	}
	p.win.begY, p.win.begX = y, x
	p.win.touch()
	return nil
}

func (d *TcellDriver) UpdatePanels() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return ErrNotStarted
	}
	d.stage(d.cur.stdscr)
	for _, p := range d.cur.panels {
		d.stage(p.win)
	}
	return nil
}

func (d *TcellDriver) InitPair(pair int16, fg, bg Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if pair <= 0 {
		return ErrInvalidArgument
	}
	d.pairs[pair] = colorPair{fg: fg, bg: bg}
	return nil
}

func (d *TcellDriver) CursSet(visibility int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if visibility < 0 || visibility > 2 {
		return d.cursorVis, ErrInvalidArgument
	}
	old := d.cursorVis
	d.cursorVis = visibility
	if d.cur == nil {
		return old, nil
	}
	switch visibility {
	case 0:
		d.cur.ts.HideCursor()
	case 1:
		d.cur.ts.SetCursorStyle(tcell.CursorStyleDefault)
	case 2:
		d.cur.ts.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	return old, nil
}

func (d *TcellDriver) Beep() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return ErrNotStarted
	}
	return errors.Wrap(d.cur.ts.Beep(), "beep")
}

func (d *TcellDriver) Interrupt() {
	d.mu.Lock()
	scr := d.cur
	d.mu.Unlock()

	if scr == nil {
		return
	}
	// Best-effort; a full queue already has something to wake on.
	_ = scr.ts.PostEvent(tcell.NewEventInterrupt(nil))
}
