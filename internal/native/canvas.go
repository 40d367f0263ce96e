package native

import "github.com/dshills/ncursesw/internal/handle"

// cell is one character position of a window's storage.
type cell struct {
	r    rune
	comb []rune
	attr Attr
	pair int16
	// cont marks the right half of a double-width rune.
	cont bool
}

var blank = cell{r: ' '}

// canvas is character storage shared by a window and everything derived
// from it.
type canvas struct {
	lines, cols int
	cells       []cell
}

func newCanvas(lines, cols int) *canvas {
	c := &canvas{}
	c.resize(lines, cols)
	return c
}

// resize reallocates the storage, keeping the overlapping top-left region.
func (c *canvas) resize(lines, cols int) {
	cells := make([]cell, lines*cols)
	for i := range cells {
		cells[i] = blank
	}
	keep := min(cols, c.cols)
	for y := 0; y < min(lines, c.lines); y++ {
		copy(cells[y*cols:y*cols+keep], c.cells[y*c.cols:y*c.cols+keep])
	}
	c.lines, c.cols, c.cells = lines, cols, cells
}

func (c *canvas) at(y, x int) *cell {
	if y < 0 || x < 0 || y >= c.lines || x >= c.cols {
		return nil
	}
	return &c.cells[y*c.cols+x]
}

// window is the driver-side record behind a window handle.
type window struct {
	id      handle.Handle
	scr     *screen
	parent  *window
	derived []*window

	store      *canvas
	offY, offX int

	// begY, begX are relative to the usable area of the screen.
	begY, begX  int
	lines, cols int
	curY, curX  int

	attr Attr
	pair int16

	panel  *panel
	ripped bool
	dirty  bool
}

func (w *window) cell(y, x int) *cell {
	if y < 0 || x < 0 || y >= w.lines || x >= w.cols {
		return nil
	}
	return w.store.at(w.offY+y, w.offX+x)
}

// absY is the terminal row of the window's first line.
func (w *window) absY() int {
	if w.ripped {
		return w.begY
	}
	return w.begY + w.scr.topStolen
}

func (w *window) touch() {
	for p := w; p != nil; p = p.parent {
		p.dirty = true
	}
}

func (w *window) hasPanel() bool {
	if w.panel != nil {
		return true
	}
	for _, d := range w.derived {
		if d.hasPanel() {
			return true
		}
	}
	return false
}

// panel is the driver-side record behind a panel handle.
type panel struct {
	id     handle.Handle
	win    *window
	hidden bool
}
