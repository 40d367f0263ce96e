// Package mouse decodes curses mouse events.
//
// A raw event mask (NativeMask) packs five transition bits for each of
// five buttons plus modifier and position-report bits. Decode turns a mask
// into an ordered list of ButtonState values:
//
//	states := mouse.Decode(raw)
//	for _, s := range states {
//	    fmt.Println(s.Button, s.Event)
//	}
//
// Results are ordered by button, then by event kind in the order
// Released, Pressed, Clicked, DoubleClicked, TripleClicked. Unknown bits
// are ignored. Encode is the inverse for the bits Decode reports.
//
// # Requests
//
// Mask names the event classes a session asks the terminal to report.
// Native converts a request into the library's mask width and fails with
// a *ConversionError when the value cannot be represented.
//
// # Origins
//
// Origin carries the cell a mouse event happened at. It has no exported
// constructor: origins only come from Poll, so a reported position always
// comes from the terminal.
package mouse
