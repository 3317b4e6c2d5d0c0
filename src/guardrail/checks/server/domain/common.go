// Package domain holds the guardrails for the server's domain layer.
package domain

import (
	"go/ast"
	"regexp"
)

// domainFiles scopes a check to sources under a domain/ directory.
var domainFiles = regexp.MustCompile(`(^|/)domain/`)

// typeName resolves the identifier behind a field type expression, looking
// through pointers, slices, and arrays. Returns "" for anything it cannot
// name without type information (maps, funcs, qualified types).
func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return typeName(t.X)
	case *ast.ArrayType:
		return typeName(t.Elt)
	}
	return ""
}
