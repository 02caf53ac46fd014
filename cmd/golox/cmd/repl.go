package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphox/golox/ast"
	"github.com/metaphox/golox/interpreter"
	"github.com/metaphox/golox/lexer"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd)
		},
	}
}

// repl reads one line at a time and runs it in a single session, so
// variables survive between lines. Errors are reported and then forgiven:
// the flags are reset after every line and the prompt keeps going.
func (a *app) repl(cmd *cobra.Command) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	interactive := isTerminal(in)
	s := a.newSession(cmd)

	prompt := func() {
		if interactive {
			fmt.Fprint(out, a.cfg.REPL.Prompt)
		}
	}

	scanner := bufio.NewScanner(in)
	for prompt(); scanner.Scan(); prompt() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if a.cfg.REPL.Echo && isExpression(line) {
			if v, err := s.Eval(line); err == nil {
				fmt.Fprintln(out, interpreter.Stringify(v))
			}
		} else {
			_ = s.Run(line)
		}
		s.ResetErrors()
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// isExpression reports whether line reads as a bare expression rather than a
// statement: it neither opens with a statement keyword or '{' nor ends with
// ';' or '}'.
func isExpression(line string) bool {
	tokens, errs := lexer.Scan(line)
	if len(errs) > 0 || len(tokens) < 2 {
		return false
	}
	switch tokens[0].Type {
	case ast.VAR, ast.PRINT, ast.LBRACE:
		return false
	}
	switch tokens[len(tokens)-2].Type {
	case ast.SEMICOLON, ast.RBRACE:
		return false
	}
	return true
}

