// Package diag holds the lexical and syntax error type shared by the lexer
// and parser, and the reporters that deliver errors to a user.
//
// The lexer and parser never print anything. They collect [*Error] values and
// hand them back to the caller, which forwards them to a [Reporter].
package diag

import (
	"fmt"
	"strings"
)

// Error is a lexical or syntax error tied to a source line.
//
// Where is empty for lexical errors, "at end" when the parser hit EOF, and
// "at 'lexeme'" when it stopped on a specific token.
type Error struct {
	Line    int
	Where   string
	Message string
}

// Error formats the error as "[line 3] Error at 'x': message".
func (e *Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// List is an ordered set of errors from one scan or parse. A nil or empty
// List is not returned as an error by the helpers in this module.
type List []*Error

// Error joins every entry on its own line.
func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes the entries to errors.Is and errors.As.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil when l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
