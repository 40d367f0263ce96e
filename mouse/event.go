package mouse

import (
	"fmt"

	"github.com/dshills/ncursesw/internal/native"
)

// Origin is the cell a mouse event was reported at. Z is device specific
// and usually zero.
type Origin struct {
	y, x, z uint
}

func newOrigin(y, x, z uint) Origin {
	return Origin{y: y, x: x, z: z}
}

// Y returns the row.
func (o Origin) Y() uint { return o.y }

// X returns the column.
func (o Origin) X() uint { return o.x }

// Z returns the device-specific third axis.
func (o Origin) Z() uint { return o.z }

func (o Origin) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.y, o.x, o.z)
}

// Event is one decoded mouse event.
type Event struct {
	ID        int16
	Origin    Origin
	Raw       NativeMask
	States    []ButtonState
	Modifiers Modifier
	// Position is set for motion reports.
	Position bool
}

// Has reports whether the event contains the given transition.
func (e Event) Has(b Button, ev ButtonEvent) bool {
	for _, s := range e.States {
		if s.Button == b && s.Event == ev {
			return true
		}
	}
	return false
}

// Poll collects the pending mouse event from d and decodes it.
func Poll(d native.Driver) (Event, error) {
	raw, err := d.GetMouse()
	if err != nil {
		return Event{}, err
	}

	coords := [3]int{raw.Y, raw.X, raw.Z}
	for _, c := range coords {
		if c < 0 {
			return Event{}, fmt.Errorf("mouse: negative coordinate in event %+v", raw)
		}
	}
	mask, err := ToNative(uint64(raw.BState))
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:        raw.ID,
		Origin:    newOrigin(uint(raw.Y), uint(raw.X), uint(raw.Z)),
		Raw:       mask,
		States:    Decode(mask),
		Modifiers: DecodeModifiers(mask),
		Position:  HasPosition(mask),
	}, nil
}
