package ast

// The node hierarchy is closed:
//
//	Node (interface)
//	  Expression (interface)
//	    Literal, Unary, Binary, Grouping, Variable, Assign
//	  Statement (interface)
//	    ExpressionStmt, PrintStmt, VarStmt, BlockStmt
//
// Nodes are built once by the parser and never mutated afterwards. Each node
// exclusively owns its children; a tree never shares subtrees.

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the AST.
type Node interface {
	// String returns the parenthesized prefix form produced by [Print].
	String() string
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node executed for its effect.
type Statement interface {
	Node
	statementNode()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Literal is a constant value taken from the source: a number (float64),
// a string, a boolean, or nil.
type Literal struct {
	Value any
}

func (e *Literal) expressionNode() {}
func (e *Literal) String() string  { return Print(e) }

// Unary is a prefix operator applied to one operand: -x, !x.
type Unary struct {
	Operator Token
	Right    Expression
}

func (e *Unary) expressionNode() {}
func (e *Unary) String() string  { return Print(e) }

// Binary is an infix operator applied to two operands: a + b.
type Binary struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *Binary) expressionNode() {}
func (e *Binary) String() string  { return Print(e) }

// Grouping is a parenthesized expression. It is kept in the tree so the
// printer can show where the source used parentheses.
type Grouping struct {
	Expression Expression
}

func (e *Grouping) expressionNode() {}
func (e *Grouping) String() string  { return Print(e) }

// Variable is a reference to a named binding.
type Variable struct {
	Name Token
}

func (e *Variable) expressionNode() {}
func (e *Variable) String() string  { return Print(e) }

// Assign stores Value into an existing binding: name = value.
type Assign struct {
	Name  Token
	Value Expression
}

func (e *Assign) expressionNode() {}
func (e *Assign) String() string  { return Print(e) }

// ── Statements ────────────────────────────────────────────────────────────────

// ExpressionStmt evaluates an expression and discards the result.
//
//	a = 3;
type ExpressionStmt struct {
	Expression Expression
}

func (s *ExpressionStmt) statementNode() {}
func (s *ExpressionStmt) String() string { return Print(s) }

// PrintStmt evaluates an expression and writes its display form.
//
//	print a + 1;
type PrintStmt struct {
	Expression Expression
}

func (s *PrintStmt) statementNode() {}
func (s *PrintStmt) String() string { return Print(s) }

// VarStmt declares a binding in the current scope.
// Initializer is nil when the declaration has no "= expr" part.
//
//	var a = 1;
//	var b;
type VarStmt struct {
	Name        Token
	Initializer Expression
}

func (s *VarStmt) statementNode() {}
func (s *VarStmt) String() string { return Print(s) }

// BlockStmt is a brace-delimited sequence of statements with its own scope.
type BlockStmt struct {
	Statements []Statement
}

func (s *BlockStmt) statementNode() {}
func (s *BlockStmt) String() string { return Print(s) }
