package cmd

import (
	"errors"

	"github.com/metaphox/golox/interpreter"
	"github.com/metaphox/golox/session"
)

// Exit codes, from sysexits(3).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
	ExitConfig   = 78
)

type fileError struct{ err error }

func (e *fileError) Error() string { return e.err.Error() }
func (e *fileError) Unwrap() error { return e.err }

type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// ExitCode maps an error returned by the command tree to a process exit code.
// Errors the CLI does not classify are treated as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		rt  *interpreter.RuntimeError
		fe  *fileError
		cfe *configError
	)
	switch {
	case errors.Is(err, session.ErrSyntax):
		return ExitDataErr
	case errors.As(err, &rt):
		return ExitSoftware
	case errors.As(err, &fe):
		return ExitIOErr
	case errors.As(err, &cfe):
		return ExitConfig
	}
	return ExitUsage
}

// reported reports whether err was already delivered to the user by a
// session's reporter.
func reported(err error) bool {
	var rt *interpreter.RuntimeError
	return errors.Is(err, session.ErrSyntax) || errors.As(err, &rt)
}
