package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/config"
	"github.com/dshills/ncursesw/mouse"
)

// historySize bounds the remembered events; only what fits is drawn.
const historySize = 256

const title = "ncmon: press keys or use the mouse, q quits"

type reload struct {
	cfg config.Config
	err error
}

type monitor struct {
	opts    *options
	watch   bool
	history []string
	count   int

	status *ncursesw.RipoffLine
	footer *ncursesw.RipoffLine
}

func newMonitorCmd(opts *options) *cobra.Command {
	m := &monitor{opts: opts}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show decoded key and mouse events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireTerminal(); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Mouse.Mask) == 0 {
				cfg.Mouse.Mask = []string{mouse.AllMouseEvents.String()}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g := ncursesw.NewGate(ncursesw.WithConfig(cfg))
			if err := m.reserve(g); err != nil {
				return err
			}
			_, err = ncursesw.InitWith(g, m.body(ctx))
			return err
		},
	}
	cmd.Flags().BoolVar(&m.watch, "watch", true, "apply changes to the configuration file while running")
	return cmd
}

// reserve takes the top line for the title and the bottom line for the
// event counter.
func (m *monitor) reserve(g *ncursesw.Gate) error {
	var err error
	m.status, err = g.NewRipoffLine(ncursesw.Top, func(w *ncursesw.Window, cols int) error {
		return drawBar(w, cols, title)
	})
	if err != nil {
		return err
	}
	m.footer, err = g.NewRipoffLine(ncursesw.Bottom, func(w *ncursesw.Window, cols int) error {
		return drawBar(w, cols, "no events yet")
	})
	return err
}

func drawBar(w *ncursesw.Window, cols int, text string) error {
	if err := w.Erase(); err != nil {
		return err
	}
	if err := w.MvAddStr(ncursesw.Origin{}, runewidth.Truncate(text, cols, "")); err != nil {
		return err
	}
	if err := w.MvChgAt(ncursesw.Origin{}, -1, ncursesw.AttrReverse, 0); err != nil {
		return err
	}
	return w.NOutRefresh()
}

// body runs the monitor in a session and returns the number of events
// seen.
func (m *monitor) body(ctx context.Context) func(*ncursesw.Session) (int, error) {
	return func(sess *ncursesw.Session) (int, error) {
		err := m.loop(ctx, sess)
		return m.count, err
	}
}

func (m *monitor) loop(ctx context.Context, sess *ncursesw.Session) error {
	reloads := make(chan reload, 1)

	var wg sync.WaitGroup
	watchCtx, cancel := context.WithCancel(ctx)
	defer wg.Wait()
	defer cancel()

	stop := context.AfterFunc(ctx, sess.Interrupt)
	defer stop()

	if m.watch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(watchCtx, m.opts.configPath, func(cfg config.Config, err error) {
				if err == nil {
					err = config.ApplyEnv(&cfg, config.EnvPrefix)
				}
				select {
				case <-reloads:
				default:
				}
				reloads <- reload{cfg: cfg, err: err}
				sess.Interrupt()
			})
			if err != nil {
				sess.Logger().WithError(err).Warn("config watch stopped")
			}
		}()
	}

	if err := m.draw(sess); err != nil {
		return err
	}
	for {
		ev, err := sess.InitialWindow().GetCh()
		switch {
		case errors.Is(err, ncursesw.ErrInterrupted):
			if ctx.Err() != nil {
				return nil
			}
			select {
			case r := <-reloads:
				m.apply(sess, r)
			default:
			}
		case err != nil:
			return err
		case ev.Key == 'q' || ev.Key == 0x03:
			return nil
		default:
			m.record(describe(ev))
		}
		if err := m.draw(sess); err != nil {
			return err
		}
	}
}

func (m *monitor) record(line string) {
	m.count++
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

// apply puts a reloaded configuration into effect. Log settings only
// change on restart.
func (m *monitor) apply(sess *ncursesw.Session, r reload) {
	err := r.err
	if err == nil {
		err = applyConfig(sess, r.cfg)
	}
	if err != nil {
		sess.Logger().WithError(err).Warn("config reload failed")
		m.record("config: " + err.Error())
		return
	}
	sess.Logger().Info("config reloaded")
	m.record("config: reloaded")
}

func applyConfig(sess *ncursesw.Session, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	reqs, err := cfg.Mouse.Requests()
	if err != nil {
		return err
	}
	sess.MouseInterval(cfg.Mouse.Interval())
	if _, err := sess.CursorVisibility(cfg.Cursor.Visibility); err != nil {
		return err
	}
	if len(reqs) == 0 {
		reqs = []mouse.Mask{mouse.AllMouseEvents}
	}
	_, err = sess.SetMouseMask(reqs...)
	return err
}

// draw shows the newest events that fit, oldest at the top.
func (m *monitor) draw(sess *ncursesw.Session) error {
	std := sess.InitialWindow()
	if err := std.Erase(); err != nil {
		return err
	}

	rows, cols := sess.Lines(), sess.Cols()
	shown := m.history
	if len(shown) > rows {
		shown = shown[len(shown)-rows:]
	}
	for i, line := range shown {
		o := ncursesw.Origin{Y: uint(i)}
		if err := std.MvAddStr(o, runewidth.Truncate(line, cols, "")); err != nil {
			return err
		}
	}
	if err := std.NOutRefresh(); err != nil {
		return err
	}

	footer := fmt.Sprintf("%d events", m.count)
	err := m.footer.Update(func(w *ncursesw.Window, cols int) error {
		return drawBar(w, cols, footer)
	})
	if err != nil {
		return err
	}
	err = m.status.Update(func(w *ncursesw.Window, cols int) error {
		return drawBar(w, cols, title)
	})
	if err != nil {
		return err
	}
	return sess.DoUpdate()
}
