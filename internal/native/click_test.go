package native

import (
	"testing"
	"time"
)

func TestClickTrackerSequence(t *testing.T) {
	tracker := newClickTracker(DefaultMouseInterval)

	pos := clickPos{y: 3, x: 7}
	now := time.Now()

	want := []int{1, 2, 3, 1}
	for i, w := range want {
		got := tracker.recordClick(1, pos, now.Add(time.Duration(i)*50*time.Millisecond))
		if got != w {
			t.Errorf("click %d count = %d, want %d", i+1, got, w)
		}
	}
}

func TestClickTrackerBreaksSequence(t *testing.T) {
	now := time.Now()
	pos := clickPos{y: 1, x: 1}

	tests := []struct {
		name   string
		button int
		pos    clickPos
		at     time.Time
	}{
		{"other button", 3, pos, now.Add(10 * time.Millisecond)},
		{"other cell", 1, clickPos{y: 1, x: 2}, now.Add(10 * time.Millisecond)},
		{"too late", 1, pos, now.Add(DefaultMouseInterval + time.Millisecond)},
		{"clock skew", 1, pos, now.Add(-time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newClickTracker(DefaultMouseInterval)
			tracker.recordClick(1, pos, now)
			if got := tracker.recordClick(tt.button, tt.pos, tt.at); got != 1 {
				t.Errorf("count = %d, want 1", got)
			}
		})
	}
}

func TestClickTrackerWithin(t *testing.T) {
	now := time.Now()
	tracker := newClickTracker(100 * time.Millisecond)

	if !tracker.within(now, now.Add(100*time.Millisecond)) {
		t.Error("release at the interval edge should count")
	}
	if tracker.within(now, now.Add(101*time.Millisecond)) {
		t.Error("late release should not count")
	}
	if tracker.within(time.Time{}, now) {
		t.Error("release without a press should not count")
	}

	tracker.maxTime = 0
	if tracker.within(now, now) {
		t.Error("zero interval disables clicks")
	}
}

func TestClickTrackerReset(t *testing.T) {
	tracker := newClickTracker(DefaultMouseInterval)
	pos := clickPos{}
	now := time.Now()

	tracker.recordClick(1, pos, now)
	tracker.reset()
	if got := tracker.recordClick(1, pos, now.Add(time.Millisecond)); got != 1 {
		t.Errorf("count after reset = %d, want 1", got)
	}
}
