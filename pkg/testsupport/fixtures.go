// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-asttpl/pkg/ast"
	"github.com/goliatone/go-asttpl/pkg/template"
)

// MustParse parses snippet source or fails the test.
func MustParse(t *testing.T, location, source string) *ast.Program {
	t.Helper()

	prog, err := template.ParseTemplate(location, source)
	if err != nil {
		t.Fatalf("parse %s: %v", location, err)
	}
	return prog
}

// Ident builds an identifier fragment.
func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// Number builds a numeric literal fragment with its canonical raw spelling.
func Number(raw string, value float64) *ast.NumberLit {
	return &ast.NumberLit{Value: value, Raw: raw}
}

// Str builds a string literal fragment.
func Str(value string) *ast.StringLit {
	return &ast.StringLit{Value: value}
}

// Call builds a call fragment with identifier callee and arguments.
func Call(callee string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Callee: Ident(callee), Args: args}
}
