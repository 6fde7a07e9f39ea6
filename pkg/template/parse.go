package template

import (
	"fmt"

	"github.com/goliatone/go-asttpl/internal/parser"
	"github.com/goliatone/go-asttpl/pkg/ast"
)

// ParseTemplate parses template source into its canonical tree. On syntax
// errors the location (file path or any caller-chosen label) is prepended to
// the parser's message and the error is returned unchanged otherwise, so
// *parser.Error details stay reachable through errors.As.
//
// The returned tree is sanitized: source positions and transient flags are
// stripped, so two parses of identical text are structurally
// indistinguishable and safe to serialize into the precompiled cache.
func ParseTemplate(location, source string) (*ast.Program, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("template: parse %s: %w", location, err)
	}
	ast.Sanitize(prog)
	return prog, nil
}
