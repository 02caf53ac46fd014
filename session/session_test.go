package session_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/metaphox/golox/ast"
	"github.com/metaphox/golox/diag"
	"github.com/metaphox/golox/interpreter"
	"github.com/metaphox/golox/session"
)

// newSession returns a session writing program output to out and collecting
// every reported error.
func newSession(t *testing.T) (*session.Session, *bytes.Buffer, *diag.Collector) {
	t.Helper()
	var out bytes.Buffer
	var errs diag.Collector
	return session.New(session.WithOutput(&out), session.WithReporter(&errs)), &out, &errs
}

func TestSession_Run(t *testing.T) {
	s, out, errs := newSession(t)
	if err := s.Run(`print 6 / 2 + 1;`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "4\n" {
		t.Errorf("output: got %q", out.String())
	}
	if s.HadError() || s.HadRuntimeError() || len(errs.Errors()) != 0 {
		t.Error("clean run must leave no error state")
	}
}

func TestSession_SyntaxErrorSkipsExecution(t *testing.T) {
	s, out, errs := newSession(t)
	err := s.Run("print \"ok\";\nprint (6 / 2;\nvar = 1;")
	if !errors.Is(err, session.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	var list diag.List
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("expected two wrapped syntax errors, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should run, got %q", out.String())
	}
	if !s.HadError() || s.HadRuntimeError() {
		t.Errorf("flags: HadError=%v HadRuntimeError=%v", s.HadError(), s.HadRuntimeError())
	}
	reported := errs.Errors()
	if len(reported) != 2 {
		t.Fatalf("reported %d errors: %v", len(reported), reported)
	}
	if got := reported[0].Error(); got != "[line 2] Error at ';': Expect ')' after expression." {
		t.Errorf("first error: %q", got)
	}
	if got := reported[1].Error(); got != "[line 3] Error at '=': Expect variable name." {
		t.Errorf("second error: %q", got)
	}
}

func TestSession_LexicalErrorSkipsExecution(t *testing.T) {
	s, out, errs := newSession(t)
	err := s.Run(`print 1; @`)
	if !errors.Is(err, session.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should run, got %q", out.String())
	}
	if len(errs.Errors()) != 1 {
		t.Errorf("reported: %v", errs.Errors())
	}
}

func TestSession_InvalidAssignmentTarget(t *testing.T) {
	s, out, _ := newSession(t)
	err := s.Run(`var a = 1; var b = 2; a + b = 3; print a;`)
	if !errors.Is(err, session.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should run, got %q", out.String())
	}
}

func TestSession_RuntimeError(t *testing.T) {
	s, out, errs := newSession(t)
	err := s.Run("print \"before\";\nprint false + 2;")
	var rt *interpreter.RuntimeError
	if !errors.As(err, &rt) {
		t.Fatalf("expected *RuntimeError, got %v", err)
	}
	if errors.Is(err, session.ErrSyntax) {
		t.Error("runtime error must not be a syntax error")
	}
	if out.String() != "before\n" {
		t.Errorf("output: got %q", out.String())
	}
	if s.HadError() || !s.HadRuntimeError() {
		t.Errorf("flags: HadError=%v HadRuntimeError=%v", s.HadError(), s.HadRuntimeError())
	}
	reported := errs.Errors()
	if len(reported) != 1 || reported[0].Error() != "Operands must be either numbers or strings.\n[line 2]" {
		t.Errorf("reported: %v", reported)
	}
}

func TestSession_GlobalsPersist(t *testing.T) {
	s, out, _ := newSession(t)
	for _, line := range []string{`var result = 5;`, `result = result * 2;`, `print result;`} {
		if err := s.Run(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if out.String() != "10\n" {
		t.Errorf("output: got %q", out.String())
	}
}

func TestSession_ResetErrors(t *testing.T) {
	s, out, _ := newSession(t)
	_ = s.Run(`print ;`)
	_ = s.Run(`print -"x";`)
	if !s.HadError() || !s.HadRuntimeError() {
		t.Fatal("both flags should be set")
	}
	s.ResetErrors()
	if s.HadError() || s.HadRuntimeError() {
		t.Fatal("flags should be cleared")
	}
	if err := s.Run(`print "again";`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "again\n" {
		t.Errorf("output: got %q", out.String())
	}
}

func TestSession_Tokens(t *testing.T) {
	s, _, errs := newSession(t)
	tokens := s.Tokens(`var x = 1;`)
	var types []string
	for _, tok := range tokens {
		types = append(types, tok.Type.String())
	}
	if got := strings.Join(types, " "); got != "VAR IDENT ASSIGN NUMBER SEMICOLON EOF" {
		t.Errorf("types: %s", got)
	}
	if s.HadError() || len(errs.Errors()) != 0 {
		t.Error("unexpected errors")
	}

	tokens = s.Tokens(`1 # 2`)
	if tokens[len(tokens)-1].Type != ast.EOF || !s.HadError() {
		t.Errorf("lexical error should be flagged and tokens still end in EOF: %v", tokens)
	}
}

func TestSession_Parse(t *testing.T) {
	s, _, _ := newSession(t)
	stmts, err := s.Parse(`print 1; var x = ; print 2;`)
	if !errors.Is(err, session.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if len(stmts) != 3 || stmts[1] != nil {
		t.Fatalf("expected a nil placeholder in the middle, got %v", stmts)
	}
	if got := stmts[2].String(); got != "(print 2)" {
		t.Errorf("recovered statement: %s", got)
	}
}

func TestSession_Eval(t *testing.T) {
	s, _, errs := newSession(t)
	if err := s.Run(`var a = 2;`); err != nil {
		t.Fatal(err)
	}
	v, err := s.Eval(`a * 3 + 1`)
	if err != nil {
		t.Fatal(err)
	}
	if v != 7.0 {
		t.Errorf("got %v, want 7", v)
	}

	for _, src := range []string{`1 +`, `1 2`, `a + 1 = 2`} {
		s.ResetErrors()
		if _, err := s.Eval(src); !errors.Is(err, session.ErrSyntax) {
			t.Errorf("%s: expected ErrSyntax, got %v", src, err)
		}
		if !s.HadError() {
			t.Errorf("%s: HadError not set", src)
		}
	}

	s.ResetErrors()
	errs.Reset()
	if _, err := s.Eval(`-nil`); err == nil || !s.HadRuntimeError() {
		t.Errorf("expected runtime error, got %v", err)
	}
	if len(errs.Errors()) != 1 {
		t.Errorf("reported: %v", errs.Errors())
	}
}

func TestSession_DebugLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := session.New(
		session.WithOutput(&bytes.Buffer{}),
		session.WithReporter(&diag.Collector{}),
		session.WithLogger(logger),
	)
	if err := s.Run(`print 1;`); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"msg=parsed", "statements=1", "msg=executed"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}
