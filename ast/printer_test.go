package ast_test

import (
	"math"
	"testing"

	"github.com/metaphox/golox/ast"
)

func op(tt ast.TokenType, lexeme string) ast.Token {
	return ast.NewToken(tt, lexeme, nil, 1)
}

func name(lexeme string) ast.Token {
	return ast.NewToken(ast.IDENT, lexeme, nil, 1)
}

func lit(v any) *ast.Literal { return &ast.Literal{Value: v} }

func TestPrint_Expressions(t *testing.T) {
	for _, tc := range []struct {
		want string
		node ast.Node
	}{
		{"(+ 1 2)", &ast.Binary{Left: lit(1.0), Operator: op(ast.PLUS, "+"), Right: lit(2.0)}},
		{"(- 1)", &ast.Unary{Operator: op(ast.MINUS, "-"), Right: lit(1.0)}},
		{"(! true)", &ast.Unary{Operator: op(ast.BANG, "!"), Right: lit(true)}},
		{"(group 3)", &ast.Grouping{Expression: lit(3.0)}},
		{"nil", lit(nil)},
		{"hello", lit("hello")},
		{"2.5", lit(2.5)},
		{"x", &ast.Variable{Name: name("x")}},
		{"(= x 1)", &ast.Assign{Name: name("x"), Value: lit(1.0)}},
		{
			"(* (- 123) (group 45.67))",
			&ast.Binary{
				Left:     &ast.Unary{Operator: op(ast.MINUS, "-"), Right: lit(123.0)},
				Operator: op(ast.ASTERISK, "*"),
				Right:    &ast.Grouping{Expression: lit(45.67)},
			},
		},
	} {
		if got := ast.Print(tc.node); got != tc.want {
			t.Errorf("Print: got %q, want %q", got, tc.want)
		}
		if got := tc.node.String(); got != tc.want {
			t.Errorf("String: got %q, want %q", got, tc.want)
		}
	}
}

func TestPrint_Statements(t *testing.T) {
	for _, tc := range []struct {
		want string
		node ast.Node
	}{
		{"(; 1)", &ast.ExpressionStmt{Expression: lit(1.0)}},
		{"(print a)", &ast.PrintStmt{Expression: lit("a")}},
		{"(var a)", &ast.VarStmt{Name: name("a")}},
		{"(var a = 1)", &ast.VarStmt{Name: name("a"), Initializer: lit(1.0)}},
		{"(block)", &ast.BlockStmt{}},
		{
			"(block (var a = 1) (print a))",
			&ast.BlockStmt{Statements: []ast.Statement{
				&ast.VarStmt{Name: name("a"), Initializer: lit(1.0)},
				&ast.PrintStmt{Expression: &ast.Variable{Name: name("a")}},
			}},
		},
		{"(block <error>)", &ast.BlockStmt{Statements: []ast.Statement{nil}}},
	} {
		if got := ast.Print(tc.node); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestPrint_Nil(t *testing.T) {
	if got := ast.Print(nil); got != "<error>" {
		t.Errorf("got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	} {
		if got := ast.FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{4.0, "4"},
		{"s", "s"},
		{struct{}{}, "<unknown>"},
	} {
		if got := ast.FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
