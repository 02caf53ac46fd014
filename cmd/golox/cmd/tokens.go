package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/golox/session"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <script>",
		Short: "Print the token stream of a script",
		Long: `Print one token per line as "TYPE lexeme literal".

Lexical errors are reported on stderr; the tokens that were recognized
are still printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readScript(args[0])
			if err != nil {
				return err
			}
			s := a.newSession(cmd)
			out := cmd.OutOrStdout()
			for _, tok := range s.Tokens(src) {
				fmt.Fprintln(out, tok)
			}
			if s.HadError() {
				return session.ErrSyntax
			}
			return nil
		},
	}
}
