package interpreter

import (
	"errors"
	"fmt"

	"github.com/metaphox/golox/ast"
)

// ErrIncompleteProgram is returned by [Interpreter.Interpret] when the
// statement list still holds a nil placeholder left by a failed parse.
var ErrIncompleteProgram = errors.New("interpreter: program contains statements that failed to parse")

// RuntimeError is an error raised while evaluating a program: a type
// mismatch or an undefined variable. Token locates it in the source.
type RuntimeError struct {
	Token   ast.Token
	Message string
}

func newRuntimeError(tok ast.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Error formats the error as the message followed by "[line N]" on its own line.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}
