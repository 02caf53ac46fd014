// Package interpreter evaluates a parsed Lox program by walking its syntax
// tree.
//
// An [Interpreter] keeps a persistent global [Environment], so successive
// calls to [Interpreter.Interpret] (one per REPL line, say) see each other's
// variables. Blocks get a fresh child environment for the duration of the
// block; the previous environment is restored on every exit path.
//
// Runtime errors are returned as [*RuntimeError] values up the evaluation
// chain and stop the current Interpret call. Output already written stays.
package interpreter

import (
	"fmt"
	"io"

	"github.com/metaphox/golox/ast"
)

// Interpreter executes statements against a chain of environments.
// It is not safe for concurrent use.
type Interpreter struct {
	out     io.Writer
	globals *Environment
	env     *Environment // current scope; globals outside any block
}

// New returns an Interpreter whose print statements write to out.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	return &Interpreter{out: out, globals: globals, env: globals}
}

// Globals returns the persistent global scope.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Interpret executes statements in order. It stops at the first runtime
// error and returns it. A list containing a nil placeholder from a failed
// parse is rejected with [ErrIncompleteProgram] before anything runs.
func (in *Interpreter) Interpret(statements []ast.Statement) error {
	if !complete(statements) {
		return ErrIncompleteProgram
	}
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// complete reports whether no statement, at any block depth, is nil.
func complete(statements []ast.Statement) bool {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case nil:
			return false
		case *ast.BlockStmt:
			if !complete(s.Statements) {
				return false
			}
		}
	}
	return true
}

// Evaluate computes the value of a single expression in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expression) (any, error) {
	return in.evaluate(expr)
}

// ── Statements ────────────────────────────────────────────────────────────────

func (in *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(in.out, Stringify(v))
		return err

	case *ast.VarStmt:
		var v any
		if s.Initializer != nil {
			var err error
			if v, err = in.evaluate(s.Initializer); err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))
	}
	return fmt.Errorf("interpreter: unknown statement %T", stmt)
}

// executeBlock runs statements with env as the current scope, then puts the
// previous scope back whether or not a statement failed.
func (in *Interpreter) executeBlock(statements []ast.Statement, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ── Expressions ───────────────────────────────────────────────────────────────

func (in *Interpreter) evaluate(expr ast.Expression) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.evaluate(e.Expression)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Variable:
		return in.env.Get(e.Name)
	case *ast.Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("interpreter: unknown expression %T", expr)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case ast.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case ast.BANG:
		return !IsTruthy(right), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator '%s'.", e.Operator.Lexeme)
}

// evalBinary evaluates both operands left to right before checking types.
func (in *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	switch op.Type {
	case ast.EQ:
		return IsEqual(left, right), nil
	case ast.NEQ:
		return !IsEqual(left, right), nil
	case ast.PLUS:
		return add(op, left, right)
	}

	l, lok := left.(float64)
	r, rok := right.(float64)
	switch op.Type {
	case ast.GT, ast.GTE, ast.LT, ast.LTE:
		if !lok || !rok {
			return nil, newRuntimeError(op, "Operands must be a number.")
		}
	case ast.MINUS, ast.SLASH, ast.ASTERISK:
		if !lok || !rok {
			return nil, newRuntimeError(op, "Operands must be numbers.")
		}
	}

	switch op.Type {
	case ast.GT:
		return l > r, nil
	case ast.GTE:
		return l >= r, nil
	case ast.LT:
		return l < r, nil
	case ast.LTE:
		return l <= r, nil
	case ast.MINUS:
		return l - r, nil
	case ast.SLASH:
		return l / r, nil
	case ast.ASTERISK:
		return l * r, nil
	}
	return nil, newRuntimeError(op, "Unknown binary operator '%s'.", op.Lexeme)
}

// add implements '+': numeric sum, string concatenation, or concatenation of a
// string with a number in either order. The number is formatted the same way
// print formats it.
func add(op ast.Token, left, right any) (any, error) {
	switch l := left.(type) {
	case float64:
		switch r := right.(type) {
		case float64:
			return l + r, nil
		case string:
			return ast.FormatNumber(l) + r, nil
		}
	case string:
		switch r := right.(type) {
		case string:
			return l + r, nil
		case float64:
			return l + ast.FormatNumber(r), nil
		}
	}
	return nil, newRuntimeError(op, "Operands must be either numbers or strings.")
}
