package ncursesw

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ncursesw/internal/logging"
	"github.com/dshills/ncursesw/internal/native"
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

// harness records the driver and screens behind a test gate.
type harness struct {
	rec      *native.Recorder
	screens  []*sizedScreen
	failures map[string]error
	// sizes overrides the 40x10 default for the screens opened next.
	sizes [][2]int
}

func (h *harness) sim() *sizedScreen {
	return h.screens[0]
}

func (h *harness) row(y, x, n int) string {
	cells, w, _ := h.sim().GetContents()
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

func newTestGate(t *testing.T, opts ...Option) (*Gate, *harness) {
	t.Helper()

	h := &harness{failures: make(map[string]error)}
	factory := func(string) (tcell.Screen, error) {
		s := &sizedScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8"), w: 40, h: 10}
		if len(h.sizes) > 0 {
			s.w, s.h = h.sizes[0][0], h.sizes[0][1]
			h.sizes = h.sizes[1:]
		}
		h.screens = append(h.screens, s)
		return s, nil
	}
	newDriver := func() native.Driver {
		h.rec = native.NewRecorder(native.NewTcellDriver(native.WithScreenFactory(factory)))
		for op, err := range h.failures {
			h.rec.Fail(op, err)
		}
		return h.rec
	}

	// Ripoff lines are process-wide; leave none behind for the next test.
	t.Cleanup(ripoffs.clear)

	base := []Option{WithLogger(logging.Discard()), withDriver(newDriver)}
	return NewGate(append(base, opts...)...), h
}

func releaseOps(rec *native.Recorder) []string {
	var ops []string
	for _, r := range rec.Releases() {
		ops = append(ops, r.Op)
	}
	return ops
}
