package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a Lox script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFile(cmd, args[0])
		},
	}
}

// runFile executes the script at path once. Syntax errors stop it before any
// statement runs.
func (a *app) runFile(cmd *cobra.Command, path string) error {
	src, err := readScript(path)
	if err != nil {
		return err
	}
	a.log.Debug("running", "script", path, "bytes", len(src))
	return a.newSession(cmd).Run(src)
}
