package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/metaphox/golox/config"
	"github.com/metaphox/golox/diag"
	"github.com/metaphox/golox/session"
)

// app carries the persistent flags and the state built from them before any
// subcommand runs.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
	log *slog.Logger
}

// Execute runs the CLI against the process arguments and standard streams
// and returns the exit code.
func Execute() int {
	return Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Main runs the CLI with explicit arguments and streams.
func Main(args []string, in io.Reader, out, errOut io.Writer) int {
	if args == nil {
		args = []string{}
	}
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err != nil && !reported(err) {
		fmt.Fprintf(errOut, "golox: %v\n", err)
	}
	return ExitCode(err)
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "golox [script]",
		Short: "Lox interpreter",
		Long: `golox runs Lox programs.

With a script argument it runs the file; with none it starts an
interactive prompt.

Exit codes:
  64  usage error
  65  syntax error in the program
  70  runtime error
  74  the script could not be read
  78  invalid configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.runFile(cmd, args[0])
			}
			return a.repl(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: golox.toml in the working directory or ~/.config/golox)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline stages to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.cfgFile
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		if path, err = config.Discover(wd); err != nil && !errors.Is(err, config.ErrNotFound) {
			return &configError{err}
		}
	}

	a.cfg = config.Default()
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return &configError{err}
		}
		a.cfg = cfg
	}

	level := a.cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.log.Debug("configured", "config", path, "color", a.cfg.Output.Color)
	return nil
}

// newSession returns a session wired to the command's streams.
func (a *app) newSession(cmd *cobra.Command) *session.Session {
	errOut := cmd.ErrOrStderr()
	useColor := !a.noColor && a.cfg.UseColor(isTerminal(errOut))
	return session.New(
		session.WithOutput(cmd.OutOrStdout()),
		session.WithReporter(diag.NewConsole(errOut, useColor)),
		session.WithLogger(a.log),
	)
}

// readScript reads the file at path, wrapping failures so they map to the
// I/O exit code.
func readScript(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", &fileError{err}
	}
	return string(src), nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
