// Command ncmon shows terminal input as the library decodes it, and runs
// Lua scripts as session bodies.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/ncursesw"
	"github.com/dshills/ncursesw/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errNotTerminal = errors.New("stdin and stdout must be a terminal")

type options struct {
	configPath string
	logLevel   string
	logFile    string
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ncmon",
		Short:         "Terminal input monitor and script runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "path to configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(
		newMonitorCmd(opts),
		newRunCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ncmon %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

// loadConfig reads the file, then environment overrides, then flags.
func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, config.EnvPrefix); err != nil {
		return cfg, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	return cfg, cfg.Validate()
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	return nil
}

// reportError prints err after the terminal has been restored.
func reportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)

	var at *ncursesw.AbnormalTermination
	if errors.As(err, &at) && at.Stack != "" {
		color.New(color.Faint).Fprintln(os.Stderr, at.Stack)
	}
}
