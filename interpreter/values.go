package interpreter

import "github.com/metaphox/golox/ast"

// Runtime values are plain Go values: nil, bool, float64 and string.

// IsTruthy reports whether v counts as true: everything except nil and false.
func IsTruthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// IsEqual compares two runtime values without any coercion between types.
// nil equals only nil.
func IsEqual(a, b any) bool {
	return a == b
}

// Stringify returns the text the print statement writes for v.
func Stringify(v any) string {
	return ast.FormatValue(v)
}
