package mouse

import (
	"fmt"
	"math/bits"

	"github.com/dshills/ncursesw/internal/mmask"
)

// NativeMask is the library's mouse mask (mmask_t).
type NativeMask uint32

// NativeBits is the width of NativeMask.
const NativeBits = 32

// ConversionError reports a value that does not fit the native width.
type ConversionError struct {
	Value uint64
	Bits  int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("mouse: value %#x needs %d bits, native width is %d",
		e.Value, bits.Len64(e.Value), e.Bits)
}

// ToNative narrows v to a NativeMask.
func ToNative(v uint64) (NativeMask, error) {
	if bits.Len64(v) > NativeBits {
		return 0, &ConversionError{Value: v, Bits: NativeBits}
	}
	return NativeMask(v), nil
}

// Mask is a request for a class of mouse events.
type Mask uint8

const (
	// ReportMousePosition asks for motion reports.
	ReportMousePosition Mask = iota + 1
	// AllMouseEvents asks for every button transition.
	AllMouseEvents
)

// Native returns the mask bits for m. Distinct requests never share bits.
func (m Mask) Native() (NativeMask, error) {
	switch m {
	case ReportMousePosition:
		return ToNative(mmask.ReportMousePosition)
	case AllMouseEvents:
		return ToNative(mmask.AllMouseEvents)
	default:
		return 0, fmt.Errorf("mouse: unknown mask request %d", m)
	}
}

// String returns a string representation of the request.
func (m Mask) String() string {
	switch m {
	case ReportMousePosition:
		return "report-mouse-position"
	case AllMouseEvents:
		return "all-mouse-events"
	default:
		return "none"
	}
}

// Combine merges several requests into one native mask.
func Combine(masks ...Mask) (NativeMask, error) {
	var out NativeMask
	for _, m := range masks {
		n, err := m.Native()
		if err != nil {
			return 0, err
		}
		out |= n
	}
	return out, nil
}

// Decode lists the button transitions set in raw, ordered by button and
// then by event kind. Modifier, position and unknown bits are ignored.
func Decode(raw NativeMask) []ButtonState {
	var states []ButtonState
	for _, b := range Buttons {
		group := mmask.Group(uint32(raw), b.Number())
		if group == 0 {
			continue
		}
		for _, ev := range ButtonEvents {
			if group&ev.bit() != 0 {
				states = append(states, ButtonState{Button: b, Event: ev})
			}
		}
	}
	return states
}

// Encode packs states into a native mask. Invalid states contribute
// nothing.
func Encode(states ...ButtonState) NativeMask {
	var raw uint32
	for _, s := range states {
		if !s.Button.Valid() {
			continue
		}
		raw |= mmask.Bits(s.Button.Number(), s.Event.bit())
	}
	return NativeMask(raw)
}

// DecodeModifiers returns the modifiers set in raw.
func DecodeModifiers(raw NativeMask) Modifier {
	var m Modifier
	if raw&mmask.Shift != 0 {
		m |= ModShift
	}
	if raw&mmask.Ctrl != 0 {
		m |= ModCtrl
	}
	if raw&mmask.Alt != 0 {
		m |= ModAlt
	}
	return m
}

// HasPosition reports whether raw is a position report.
func HasPosition(raw NativeMask) bool {
	return raw&mmask.ReportMousePosition != 0
}
