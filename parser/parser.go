// Package parser implements the Lox recursive-descent parser.
//
// The parser reads the token slice produced by [lexer.Scan] and builds a list
// of [ast.Statement] values. Each grammar rule is one method, from lowest to
// highest precedence:
//
//	program     → declaration* EOF
//	declaration → "var" IDENT ( "=" expression )? ";" | statement
//	statement   → "print" expression ";" | block | exprStmt
//	block       → "{" declaration* "}"
//	exprStmt    → expression ";"
//	expression  → assignment
//	assignment  → IDENT "=" assignment | equality
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "-" | "!" ) unary | primary
//	primary     → NUMBER | STRING | "true" | "false" | "nil"
//	            | "(" expression ")" | IDENT
//
// Usage:
//
//	tokens, lexErrs := lexer.Scan(source)
//	p := parser.New(tokens)
//	stmts := p.Parse()
//	if errs := p.Errors(); len(errs) != 0 { ... }
//
// Error recovery: the parser collects errors and attempts to continue so that
// multiple problems can be reported in a single pass. A statement that fails
// to parse leaves a nil entry at its position in the result, and the parser
// skips ahead to the next statement boundary before trying again.
package parser

import (
	"fmt"

	"github.com/metaphox/golox/ast"
	"github.com/metaphox/golox/diag"
)

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds all state needed to parse one token stream.
// Create one with [New] and call [Parser.Parse].
type Parser struct {
	tokens  []ast.Token
	current int // index of the next token to consume
	errors  diag.List
}

// New creates a Parser over tokens. If tokens does not end in EOF (a
// hand-assembled stream, say) one is appended so the parser always has a
// terminator to stop on.
func New(tokens []ast.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != ast.EOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], ast.Token{Type: ast.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse is a shorthand for New(tokens).Parse() that also returns the errors.
func Parse(tokens []ast.Token) ([]ast.Statement, diag.List) {
	p := New(tokens)
	stmts := p.Parse()
	return stmts, p.Errors()
}

// Errors returns all syntax errors collected during Parse.
func (p *Parser) Errors() diag.List {
	return p.errors
}

// Parse consumes the whole token stream and returns one entry per top-level
// declaration. Entries for declarations that failed to parse are nil.
func (p *Parser) Parse() []ast.Statement {
	var stmts []ast.Statement
	for !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

// ParseExpression parses a single expression and requires it to span the
// whole stream. It is used by tools that evaluate bare expressions.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorAt(p.peek(), "Expect end of expression.")
	}
	return expr, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// peek returns the token about to be consumed.
func (p *Parser) peek() ast.Token { return p.tokens[p.current] }

// previous returns the most recently consumed token.
func (p *Parser) previous() ast.Token { return p.tokens[p.current-1] }

func (p *Parser) atEnd() bool { return p.peek().Type == ast.EOF }

// advance consumes the current token and returns it. At EOF it stays put.
func (p *Parser) advance() ast.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

// check reports whether the current token has type tt, without consuming it.
func (p *Parser) check(tt ast.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == tt
}

// match consumes the current token if it has one of the given types.
func (p *Parser) match(types ...ast.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of type tt or records an error with message.
func (p *Parser) expect(tt ast.TokenType, message string) (ast.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return ast.Token{}, p.errorAt(p.peek(), message)
}

// errorAt records a syntax error located at tok and returns it so the caller
// can unwind to the enclosing declaration.
func (p *Parser) errorAt(tok ast.Token, message string) error {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == ast.EOF {
		where = "at end"
	}
	err := &diag.Error{Line: tok.Line, Where: where, Message: message}
	p.errors = append(p.errors, err)
	return err
}

// synchronize discards tokens until just after a ';' or just before a token
// that can begin a statement, so parsing can resume after an error.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == ast.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case ast.CLASS, ast.FUN, ast.VAR, ast.FOR,
			ast.IF, ast.WHILE, ast.PRINT, ast.RETURN:
			return
		}
		p.advance()
	}
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// declaration is the recovery point: any error below it is already recorded,
// so it resynchronizes and yields a nil placeholder.
func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	if p.match(ast.VAR) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// varDeclaration parses the rest of `var name [= expr];`.
func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.expect(ast.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	if p.match(ast.ASSIGN) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(ast.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: init}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(ast.PRINT):
		return p.printStatement()
	case p.match(ast.LBRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: value}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}

// block parses declarations up to the closing '}'. The '{' has been consumed.
// A declaration inside the block that fails is recovered locally and leaves a
// nil entry, like a failed top-level declaration.
func (p *Parser) block() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.check(ast.RBRACE) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	if _, err := p.expect(ast.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ── Expression parsing ────────────────────────────────────────────────────────

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment parses the left-hand side as an ordinary expression first and
// only then looks for '='. The target must turn out to be a plain variable;
// anything else is reported but does not unwind, and the left-hand expression
// is returned as the result.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	if p.match(ast.ASSIGN) {
		equals := p.previous()
		value, err := p.assignment() // right-associative
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

// binaryLevel parses one left-associative binary precedence level: operands
// come from next and any of ops may join them.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...ast.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, ast.NEQ, ast.EQ)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, ast.GT, ast.GTE, ast.LT, ast.LTE)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, ast.MINUS, ast.PLUS)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, ast.SLASH, ast.ASTERISK)
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(ast.BANG, ast.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(ast.FALSE):
		return &ast.Literal{Value: false}, nil
	case p.match(ast.TRUE):
		return &ast.Literal{Value: true}, nil
	case p.match(ast.NIL):
		return &ast.Literal{Value: nil}, nil
	case p.match(ast.NUMBER, ast.STRING):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(ast.IDENT):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(ast.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
