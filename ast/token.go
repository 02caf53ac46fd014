// Package ast defines the token types, the Token struct, and the syntax tree
// nodes shared by the Lox lexer, parser, and interpreter.
//
// Tokens are the smallest meaningful units of a Lox source file. Every token
// carries its type, the exact lexeme it was scanned from, an optional literal
// value, and the 1-based source line it ended on.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
// The zero value (ILLEGAL) is reserved and never produced by the lexer.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is the zero TokenType. Lexical errors are reported, not tokenised,
	// so a well-formed token stream never contains it.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. Every scanned stream ends with
	// exactly one EOF token.
	EOF

	// ── Single-character delimiters ─────────────────────────────────────────────

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// ── Arithmetic operators ────────────────────────────────────────────────────

	MINUS    // -  (binary subtraction or unary negation)
	PLUS     // +  (addition or string concatenation)
	SLASH    // /
	ASTERISK // *

	// ── One- or two-character operators ─────────────────────────────────────────

	BANG   // !
	NEQ    // !=
	ASSIGN // =
	EQ     // ==
	GT     // >
	GTE    // >=
	LT     // <
	LTE    // <=

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	IDENT
	// STRING is a double-quoted string literal. Its Literal holds the text
	// between the quotes; there are no escape sequences.
	STRING
	// NUMBER is a decimal literal such as 42 or 3.14. Its Literal is a float64.
	NUMBER

	// ── Keywords ───────────────────────────────────────────────────────────────

	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

var tokenNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	DOT:       "DOT",
	SEMICOLON: "SEMICOLON",
	MINUS:     "MINUS",
	PLUS:      "PLUS",
	SLASH:     "SLASH",
	ASTERISK:  "ASTERISK",
	BANG:      "BANG",
	NEQ:       "NEQ",
	ASSIGN:    "ASSIGN",
	EQ:        "EQ",
	GT:        "GT",
	GTE:       "GTE",
	LT:        "LT",
	LTE:       "LTE",
	IDENT:     "IDENT",
	STRING:    "STRING",
	NUMBER:    "NUMBER",
	AND:       "AND",
	CLASS:     "CLASS",
	ELSE:      "ELSE",
	FALSE:     "FALSE",
	FOR:       "FOR",
	FUN:       "FUN",
	IF:        "IF",
	NIL:       "NIL",
	OR:        "OR",
	PRINT:     "PRINT",
	RETURN:    "RETURN",
	SUPER:     "SUPER",
	THIS:      "THIS",
	TRUE:      "TRUE",
	VAR:       "VAR",
	WHILE:     "WHILE",
}

// String returns the constant name of the token type, e.g. "NUMBER".
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords maps the text of every reserved word to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent checks whether ident is a reserved word and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Type:    the category of this token (see TokenType constants)
//   - Lexeme:  the exact source text that was scanned
//   - Literal: float64 for NUMBER, string for STRING, nil otherwise
//   - Line:    1-based source line number
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

// NewToken builds a token, mostly for tests and hand-assembled token streams.
func NewToken(tt TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: tt, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders the token as "TYPE lexeme literal", the format used by the
// token dump in the command-line tool.
func (t Token) String() string {
	lit := "nil"
	switch v := t.Literal.(type) {
	case float64:
		lit = FormatNumber(v)
	case string:
		lit = v
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, lit)
}
