package template

import "github.com/goliatone/go-asttpl/pkg/ast"

// Result is the normalised output of an instantiation. Its shape is derived
// from the template's structure, never requested: exactly one of Node or
// Nodes is set. A single-statement template yields Node (the bare expression
// when the statement is an expression statement and statement form was not
// kept); anything else yields the full ordered sequence in Nodes.
type Result struct {
	Node  ast.Node
	Nodes []ast.Stmt
}

// IsSequence reports whether the result is an ordered statement sequence
// rather than a single node.
func (r Result) IsSequence() bool {
	return r.Node == nil
}
