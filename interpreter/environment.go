package interpreter

import "github.com/metaphox/golox/ast"

// Environment is one lexical scope: a set of bindings plus a link to the
// scope that encloses it. The global scope has a nil enclosing link, which
// terminates every lookup chain.
//
// A child never owns its parent; it only refers to it. Block scopes are
// dropped once the block finishes.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// NewEnvironment returns an empty scope nested inside enclosing. Pass nil to
// create a global scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]any), enclosing: enclosing}
}

// Enclosing returns the parent scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define creates or overwrites a binding in this scope. Redeclaring a name
// is allowed.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks the name up in this scope and then in each enclosing scope.
// It fails with an undefined-variable [*RuntimeError] carrying name.
func (e *Environment) Get(name ast.Token) (any, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// Assign stores value in the nearest scope that already defines the name.
// Assignment never creates a binding; if no scope has the name it fails
// like [Environment.Get].
func (e *Environment) Assign(name ast.Token, value any) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return undefined(name)
}

func undefined(name ast.Token) *RuntimeError {
	return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
