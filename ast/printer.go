package ast

import (
	"math"
	"strconv"
	"strings"
)

// Print renders n in a Lisp-like prefix form: operators first, operands
// after, every compound node wrapped in parentheses.
//
//	Binary(Literal(1), +, Literal(2))  →  (+ 1 2)
//	Grouping(Literal(3))               →  (group 3)
//	VarStmt(a, Literal(1))             →  (var a = 1)
//
// A nil node (the parser's placeholder for a statement that failed to parse)
// prints as "<error>".
func Print(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<error>")

	// ── Expressions ─────────────────────────────────────────────────────────
	case *Literal:
		b.WriteString(FormatValue(n.Value))
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)

	// ── Statements ──────────────────────────────────────────────────────────
	case *ExpressionStmt:
		parenthesize(b, ";", n.Expression)
	case *PrintStmt:
		parenthesize(b, "print", n.Expression)
	case *VarStmt:
		if n.Initializer == nil {
			b.WriteString("(var " + n.Name.Lexeme + ")")
			return
		}
		parenthesize(b, "var "+n.Name.Lexeme+" =", n.Initializer)
	case *BlockStmt:
		nodes := make([]Node, len(n.Statements))
		for i, s := range n.Statements {
			nodes[i] = s
		}
		parenthesize(b, "block", nodes...)
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, n := range nodes {
		b.WriteByte(' ')
		write(b, n)
	}
	b.WriteByte(')')
}

// FormatValue returns the display text of a runtime or literal value.
// nil prints as "nil" and numbers go through [FormatNumber].
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return FormatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	}
	return "<unknown>"
}

// FormatNumber formats f with the fewest digits that round-trip, so whole
// numbers print without a trailing ".0".
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
