// Package session ties the lexer, parser and interpreter into one pipeline
// and owns the error state of a run.
//
// A Session replaces the process-wide "had error" flags a simple interpreter
// would keep: each Session tracks its own [Session.HadError] and
// [Session.HadRuntimeError], and keeps one interpreter whose globals persist
// across calls to [Session.Run].
//
// Usage:
//
//	s := session.New(session.WithOutput(os.Stdout))
//	if err := s.Run(src); err != nil {
//		// already reported; err wraps ErrSyntax or is a *interpreter.RuntimeError
//	}
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/metaphox/golox/ast"
	"github.com/metaphox/golox/diag"
	"github.com/metaphox/golox/interpreter"
	"github.com/metaphox/golox/lexer"
	"github.com/metaphox/golox/parser"
)

// ErrSyntax marks a run that stopped before execution because the source had
// lexical or syntax errors. The individual errors are wrapped alongside it.
var ErrSyntax = errors.New("syntax errors")

// Session runs Lox source. It is not safe for concurrent use.
type Session struct {
	out      io.Writer
	reporter diag.Reporter
	log      *slog.Logger
	interp   *interpreter.Interpreter

	hadError        bool
	hadRuntimeError bool
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets where print statements write. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithReporter sets where errors are reported. Defaults to a plain
// [diag.Console] on os.Stderr.
func WithReporter(r diag.Reporter) Option {
	return func(s *Session) { s.reporter = r }
}

// WithLogger sets the logger used for pipeline tracing. Defaults to a logger
// that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New returns a Session with a fresh global environment.
func New(opts ...Option) *Session {
	s := &Session{out: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}
	if s.reporter == nil {
		s.reporter = diag.NewConsole(os.Stderr, false)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.interp = interpreter.New(s.out)
	return s
}

// HadError reports whether any run since the last reset hit a lexical or
// syntax error.
func (s *Session) HadError() bool { return s.hadError }

// HadRuntimeError reports whether any run since the last reset failed at
// runtime.
func (s *Session) HadRuntimeError() bool { return s.hadRuntimeError }

// ResetErrors clears both error flags. Globals are kept.
func (s *Session) ResetErrors() {
	s.hadError = false
	s.hadRuntimeError = false
}

// Tokens scans source. Lexical errors are reported and set HadError; the
// token slice is returned either way and always ends in a single EOF.
func (s *Session) Tokens(source string) []ast.Token {
	tokens, errs := lexer.Scan(source)
	s.log.Debug("scanned", "tokens", len(tokens), "errors", len(errs))
	s.syntaxErrors(errs)
	return tokens
}

// Parse scans and parses source. It returns the statements together with a
// non-nil error wrapping [ErrSyntax] when anything failed; failed statements
// are nil entries in the slice.
func (s *Session) Parse(source string) ([]ast.Statement, error) {
	tokens, lexErrs := lexer.Scan(source)
	stmts, parseErrs := parser.Parse(tokens)
	s.log.Debug("parsed",
		"tokens", len(tokens),
		"statements", len(stmts),
		"lex_errors", len(lexErrs),
		"parse_errors", len(parseErrs))

	errs := append(lexErrs, parseErrs...)
	if err := s.syntaxErrors(errs); err != nil {
		return stmts, err
	}
	return stmts, nil
}

// Run parses and executes source. Syntax errors prevent execution entirely.
// Every error is reported before Run returns it.
func (s *Session) Run(source string) error {
	stmts, err := s.Parse(source)
	if err != nil {
		return err
	}
	if err := s.interp.Interpret(stmts); err != nil {
		return s.runtimeError(err)
	}
	s.log.Debug("executed", "statements", len(stmts))
	return nil
}

// Eval parses source as a single expression and evaluates it against the
// session's globals.
func (s *Session) Eval(source string) (any, error) {
	tokens, lexErrs := lexer.Scan(source)
	if err := s.syntaxErrors(lexErrs); err != nil {
		return nil, err
	}
	p := parser.New(tokens)
	expr, _ := p.ParseExpression()
	if err := s.syntaxErrors(p.Errors()); err != nil {
		return nil, err
	}
	v, err := s.interp.Evaluate(expr)
	if err != nil {
		return nil, s.runtimeError(err)
	}
	return v, nil
}

func (s *Session) syntaxErrors(errs diag.List) error {
	if len(errs) == 0 {
		return nil
	}
	s.hadError = true
	s.reporter.Report(errs)
	return fmt.Errorf("%w: %w", ErrSyntax, errs)
}

func (s *Session) runtimeError(err error) error {
	s.hadRuntimeError = true
	s.log.Debug("runtime error", "error", err)
	s.reporter.Report(err)
	return err
}
