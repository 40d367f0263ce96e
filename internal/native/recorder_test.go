package native

import (
	"errors"
	"testing"
)

func TestRecorderCountsAndReleases(t *testing.T) {
	tt := newTestTerm(t, 20, 5)
	rec := NewRecorder(tt.TcellDriver)

	std, err := rec.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	win, _ := rec.NewWin(2, 2, 0, 0)
	pan, _ := rec.NewPanel(win)
	_ = rec.MvWAddStr(std, 0, 0, "a")
	_ = rec.MvWAddStr(std, 0, 1, "b")

	if got := rec.Calls("MvWAddStr"); got != 2 {
		t.Errorf("Calls(MvWAddStr) = %d, want 2", got)
	}

	if err := rec.DelPanel(pan); err != nil {
		t.Fatalf("DelPanel() error = %v", err)
	}
	if err := rec.DelWin(win); err != nil {
		t.Fatalf("DelWin() error = %v", err)
	}
	if err := rec.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	want := []string{"DelPanel", "DelWin", "End"}
	got := rec.Releases()
	if len(got) != len(want) {
		t.Fatalf("Releases() = %v, want ops %v", got, want)
	}
	for i, op := range want {
		if got[i].Op != op {
			t.Errorf("release %d = %s, want %s", i, got[i].Op, op)
		}
	}
	if n := rec.ReleaseCount(win); n != 1 {
		t.Errorf("ReleaseCount(win) = %d, want 1", n)
	}
}

func TestRecorderFail(t *testing.T) {
	tt := newTestTerm(t, 20, 5)
	rec := NewRecorder(tt.TcellDriver)

	boom := errors.New("boom")
	rec.Fail("Init", boom)

	if _, err := rec.Init(); !errors.Is(err, boom) {
		t.Fatalf("Init() error = %v, want %v", err, boom)
	}
	if tt.started {
		t.Error("injected failure reached the driver")
	}

	rec.Fail("Init", nil)
	if _, err := rec.Init(); err != nil {
		t.Fatalf("Init() after clearing error = %v", err)
	}
	defer func() { _ = rec.End() }()

	if got := rec.Calls("Init"); got != 2 {
		t.Errorf("Calls(Init) = %d, want 2", got)
	}

	rec.Reset()
	if got := rec.Calls("Init"); got != 0 {
		t.Errorf("Calls after Reset = %d, want 0", got)
	}
}
