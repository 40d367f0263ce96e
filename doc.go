// Package ncursesw wraps a curses-style terminal library in an
// ownership-checked API.
//
// A terminal session is opened with Init, which runs a body function and
// tears the terminal down exactly once afterwards, even if the body panics:
//
//	n, err := ncursesw.Init(func(s *ncursesw.Session) (int, error) {
//	    w := s.InitialWindow()
//	    if err := w.MvAddStr(ncursesw.Origin{Y: 0, X: 0}, "hello"); err != nil {
//	        return 0, err
//	    }
//	    if err := w.Refresh(); err != nil {
//	        return 0, err
//	    }
//	    ev, err := w.GetCh()
//	    return int(ev.Key), err
//	})
//
// # Ownership
//
// Each Window, Panel and Screen either owns its native resource or is a
// view of one. Closing an owner releases the resource exactly once.
// Closing a view never does. Sub-windows and the results of panel-stack
// queries are views; the initial window and screen belong to the session
// and cannot be closed. An owner cannot be closed while sub-windows or
// panels derived from it are still open. Whatever is left open when the
// body returns is released in reverse creation order.
//
// # Ripoff lines
//
// NewRipoffLine reserves the top or bottom terminal row before a session
// starts. The registered function runs once when the session starts, and
// Update gives later access to the realized one-row window.
//
// # Concurrency
//
// Only one session may be active per process. Wrappers are not safe for
// concurrent use; Session.Interrupt is the exception and may be called
// from any goroutine to wake a blocked GetCh.
package ncursesw
