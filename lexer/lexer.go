// Package lexer implements the Lox lexer (scanner).
//
// The lexer converts a Lox source string into a flat stream of [ast.Token]
// values. Call [Scan] to tokenise a whole source at once, or [New] followed by
// repeated calls to [Lexer.NextToken] until a token with Type == [ast.EOF]
// comes back.
//
// Design notes:
//   - Single-pass, character-by-character scanning with two cursors: start
//     marks the beginning of the current lexeme, current the next byte to read.
//   - No global state; every [Lexer] is independent.
//   - Lexical errors never stop the scan. They are recorded (see
//     [Lexer.Errors]) and the lexer moves on to the next character.
//   - Comments (// …) are consumed silently and emit no token.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent]; this keeps the main switch statement small.
//   - Two-character operators (!=, ==, <=, >=) use one byte of look-ahead.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/metaphox/golox/ast"
	"github.com/metaphox/golox/diag"
)

// Lexer holds all state required to tokenise a single Lox source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	start   int    // index of the first byte of the lexeme being scanned
	current int    // index of the next byte to read
	line    int    // current 1-based line number

	errors diag.List
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Scan tokenises the whole input. The returned slice always ends with exactly
// one EOF token, even when errors were found; errors is nil for clean input.
func Scan(input string) ([]ast.Token, diag.List) {
	l := New(input)
	var tokens []ast.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == ast.EOF {
			break
		}
	}
	return tokens, l.Errors()
}

// Errors returns the lexical errors recorded so far, in source order.
func (l *Lexer) Errors() diag.List {
	return l.errors
}

// NextToken returns the next token from the input.
//
// Whitespace and comments are skipped before each token, and any characters
// that do not form a token are reported and skipped. When the input is
// exhausted, NextToken returns an EOF token on every subsequent call.
func (l *Lexer) NextToken() ast.Token {
	for {
		l.skipWhitespaceAndComments()
		l.start = l.current
		if l.atEnd() {
			return ast.Token{Type: ast.EOF, Line: l.line}
		}
		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

// scanToken scans one lexeme starting at l.start. It reports false when the
// lexeme was an error and no token should be emitted.
func (l *Lexer) scanToken() (ast.Token, bool) {
	ch := l.advance()
	switch ch {
	// ── Single-character delimiters ─────────────────────────────────────────
	case '(':
		return l.makeToken(ast.LPAREN), true
	case ')':
		return l.makeToken(ast.RPAREN), true
	case '{':
		return l.makeToken(ast.LBRACE), true
	case '}':
		return l.makeToken(ast.RBRACE), true
	case ',':
		return l.makeToken(ast.COMMA), true
	case '.':
		return l.makeToken(ast.DOT), true
	case ';':
		return l.makeToken(ast.SEMICOLON), true
	case '-':
		return l.makeToken(ast.MINUS), true
	case '+':
		return l.makeToken(ast.PLUS), true
	case '*':
		return l.makeToken(ast.ASTERISK), true
	case '/':
		// Comments were already skipped, so a lone '/' is division.
		return l.makeToken(ast.SLASH), true

	// ── Operators that may be one or two characters ─────────────────────────
	case '!':
		return l.makeToken(l.either('=', ast.NEQ, ast.BANG)), true
	case '=':
		return l.makeToken(l.either('=', ast.EQ, ast.ASSIGN)), true
	case '<':
		return l.makeToken(l.either('=', ast.LTE, ast.LT)), true
	case '>':
		return l.makeToken(l.either('=', ast.GTE, ast.GT)), true

	// ── String literal ──────────────────────────────────────────────────────
	case '"':
		return l.readString()

	default:
		switch {
		case isDigit(ch):
			return l.readNumber(), true
		case isLetter(ch):
			return l.readIdentifier(), true
		}
		l.unexpected()
		return ast.Token{}, false
	}
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func (l *Lexer) atEnd() bool { return l.current >= len(l.input) }

// advance consumes and returns the next byte.
func (l *Lexer) advance() byte {
	ch := l.input[l.current]
	l.current++
	return ch
}

// peek returns the next byte without consuming it, or 0 at end of input.
func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.current]
}

// peekNext returns the byte after peek, or 0 past the end of input.
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.input) {
		return 0
	}
	return l.input[l.current+1]
}

// either consumes want and returns matched if the next byte is want;
// otherwise it returns single and leaves the cursor alone.
func (l *Lexer) either(want byte, matched, single ast.TokenType) ast.TokenType {
	if l.peek() != want {
		return single
	}
	l.current++
	return matched
}

// makeToken builds a token of type tt from the current lexeme with no literal.
func (l *Lexer) makeToken(tt ast.TokenType) ast.Token {
	return l.literalToken(tt, nil)
}

func (l *Lexer) literalToken(tt ast.TokenType, literal any) ast.Token {
	return ast.Token{
		Type:    tt,
		Lexeme:  l.input[l.start:l.current],
		Literal: literal,
		Line:    l.line,
	}
}

// errorf records a lexical error on the current line.
func (l *Lexer) errorf(format string, args ...any) {
	l.errors = append(l.errors, &diag.Error{
		Line:    l.line,
		Message: fmt.Sprintf(format, args...),
	})
}

// unexpected reports the character at l.start. A multi-byte UTF-8 sequence is
// reported once, as a whole rune, and skipped entirely.
func (l *Lexer) unexpected() {
	r, size := utf8.DecodeRuneInString(l.input[l.start:])
	l.current = l.start + size
	if r == utf8.RuneError && size <= 1 {
		l.errorf("Unexpected character %q.", l.input[l.start])
		return
	}
	l.errorf("Unexpected character %q.", r)
}

// skipWhitespaceAndComments advances past whitespace and line comments,
// counting newlines as it goes.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.current++
		case '\n':
			l.line++
			l.current++
		case '/':
			if l.peekNext() != '/' {
				return // lone '/' is the division operator
			}
			for !l.atEnd() && l.peek() != '\n' {
				l.current++
			}
		default:
			return
		}
	}
}

// readIdentifier scans the rest of an identifier or keyword. The first
// character has already been consumed.
func (l *Lexer) readIdentifier() ast.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.current++
	}
	return l.makeToken(ast.LookupIdent(l.input[l.start:l.current]))
}

// readNumber scans the rest of a number literal. A '.' is only consumed when
// a digit follows it, so "1." scans as NUMBER then DOT.
func (l *Lexer) readNumber() ast.Token {
	for isDigit(l.peek()) {
		l.current++
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.current++ // consume '.'
		for isDigit(l.peek()) {
			l.current++
		}
	}
	// The lexeme is digits with at most one interior dot, which always parses.
	val, _ := strconv.ParseFloat(l.input[l.start:l.current], 64)
	return l.literalToken(ast.NUMBER, val)
}

// readString scans a string literal; the opening '"' has been consumed.
// Strings may span lines. If the input ends before the closing quote an
// error is recorded and no token is produced.
func (l *Lexer) readString() (ast.Token, bool) {
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.current++
	}
	if l.atEnd() {
		l.errorf("Unterminated string.")
		return ast.Token{}, false
	}
	l.current++ // closing '"'
	value := l.input[l.start+1 : l.current-1]
	return l.literalToken(ast.STRING, value), true
}

// isLetter reports whether b can start an identifier: [a-zA-Z_].
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
