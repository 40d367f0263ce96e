package native

import "time"

// clickPos is a screen cell.
type clickPos struct {
	y, x int
}

// clickTracker counts consecutive clicks of one button on one cell.
type clickTracker struct {
	maxTime time.Duration

	lastButton int
	lastPos    clickPos
	lastTime   time.Time
	lastCount  int
}

func newClickTracker(maxTime time.Duration) *clickTracker {
	return &clickTracker{maxTime: maxTime}
}

// recordClick returns 1, 2 or 3 for a single, double or triple click. A
// fourth click starts over.
func (t *clickTracker) recordClick(button int, pos clickPos, timestamp time.Time) int {
	if t.isPartOfSequence(button, pos, timestamp) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastButton = button
	t.lastPos = pos
	t.lastTime = timestamp

	return t.lastCount
}

// isPartOfSequence requires the same button on the same cell within
// maxTime of the previous click.
func (t *clickTracker) isPartOfSequence(button int, pos clickPos, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	if button != t.lastButton || pos != t.lastPos {
		return false
	}

	// Clock skew starts a new sequence.
	elapsed := timestamp.Sub(t.lastTime)
	return elapsed >= 0 && elapsed <= t.maxTime
}

// within reports whether a release at timestamp still counts as a click
// for a press at pressed.
func (t *clickTracker) within(pressed, timestamp time.Time) bool {
	if t.maxTime <= 0 || pressed.IsZero() {
		return false
	}
	elapsed := timestamp.Sub(pressed)
	return elapsed >= 0 && elapsed <= t.maxTime
}

// reset forgets the current sequence.
func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = clickPos{}
	t.lastButton = 0
}
