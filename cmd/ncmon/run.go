package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/internal/script"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a Lua script as the body of a terminal session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return err
			}
			if err := requireTerminal(); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g := ncursesw.NewGate(ncursesw.WithConfig(cfg))
			_, err = ncursesw.InitWith(g, func(sess *ncursesw.Session) (struct{}, error) {
				return struct{}{}, script.Run(ctx, sess, path)
			})
			if ctx.Err() != nil {
				// Stopped by a signal.
				return nil
			}
			return err
		},
	}
}
