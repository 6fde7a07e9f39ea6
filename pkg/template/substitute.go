package template

import (
	"github.com/goliatone/go-asttpl/pkg/ast"
	"github.com/goliatone/go-asttpl/pkg/walk"
)

// Placeholders maps placeholder identifier names to the fragments that
// replace them. Fragments are moved into the instantiated tree, not copied:
// supplying the same fragment value for two placeholders, or reusing one
// across instantiations, aliases subtrees and is a caller bug.
type Placeholders map[string]ast.Node

// substitute runs a single pre-order walk over the clone, replacing every
// identifier whose name appears in placeholders. Replaced subtrees are never
// descended into, so a fragment that itself contains a placeholder name is
// inserted verbatim rather than rescanned. Structural name slots
// (declaration names, member properties, function parameters) are handled on
// entry to their owning node and accept identifier fragments only. Returns
// the set of placeholder names that matched at least once, for strict-mode
// validation.
func substitute(prog *ast.Program, placeholders Placeholders) map[string]struct{} {
	used := make(map[string]struct{}, len(placeholders))

	walk.Apply(prog, func(c *walk.Cursor) walk.Verdict {
		renameSlots(c.Node(), placeholders, used)

		// A statement-level `x;` is as eligible as a bare `x`: consider the
		// wrapped expression, but replace at the statement slot so fragment
		// statements can stand in directly.
		if stmt, ok := c.Node().(*ast.ExpressionStmt); ok {
			if id, ok := stmt.Expr.(*ast.Identifier); ok {
				if fragment, ok := placeholders[id.Name]; ok {
					used[id.Name] = struct{}{}
					c.Replace(asStmt(fragment))
					return walk.SkipChildren
				}
			}
			return walk.Continue
		}

		if id, ok := c.Node().(*ast.Identifier); ok {
			if fragment, ok := placeholders[id.Name]; ok {
				expr, ok := asExpr(fragment)
				if !ok {
					// A statement fragment cannot occupy an expression
					// slot; leave the identifier in place (permissive).
					return walk.Continue
				}
				used[id.Name] = struct{}{}
				c.Replace(expr)
				return walk.SkipChildren
			}
		}
		return walk.Continue
	}, nil)

	return used
}

// renameSlots substitutes a node's structural name slots. The walker never
// visits these slots, so inserted names are not rescanned. Only an identifier
// fragment fits a name slot; any other fragment leaves the name in place
// (permissive, unrecorded).
func renameSlots(n ast.Node, placeholders Placeholders, used map[string]struct{}) {
	switch t := n.(type) {
	case *ast.VarStmt:
		if id, ok := identFragment(placeholders, t.Name.Name); ok {
			used[t.Name.Name] = struct{}{}
			t.Name = id
		}
	case *ast.MemberExpr:
		if id, ok := identFragment(placeholders, t.Property.Name); ok {
			used[t.Property.Name] = struct{}{}
			t.Property = id
		}
	case *ast.FuncExpr:
		for i, p := range t.Params {
			if id, ok := identFragment(placeholders, p.Name); ok {
				used[p.Name] = struct{}{}
				t.Params[i] = id
			}
		}
	}
}

func identFragment(placeholders Placeholders, name string) (*ast.Identifier, bool) {
	fragment, ok := placeholders[name]
	if !ok {
		return nil, false
	}
	id, ok := fragment.(*ast.Identifier)
	return id, ok
}

// asStmt coerces a fragment into statement position, wrapping bare
// expressions in an expression statement.
func asStmt(n ast.Node) ast.Stmt {
	if stmt, ok := n.(ast.Stmt); ok {
		return stmt
	}
	if expr, ok := n.(ast.Expr); ok {
		return &ast.ExpressionStmt{Expr: expr}
	}
	// Program fragments do not fit a single statement slot; collapse a
	// one-statement program, otherwise wrap in a block to preserve order.
	if prog, ok := n.(*ast.Program); ok {
		if len(prog.Body) == 1 {
			return prog.Body[0]
		}
		return &ast.BlockStmt{Body: prog.Body}
	}
	return &ast.ExpressionStmt{}
}

// asExpr coerces a fragment into expression position, unwrapping a single
// expression statement. Statement fragments do not coerce.
func asExpr(n ast.Node) (ast.Expr, bool) {
	switch t := n.(type) {
	case ast.Expr:
		return t, true
	case *ast.ExpressionStmt:
		return t.Expr, true
	case *ast.Program:
		if len(t.Body) == 1 {
			if stmt, ok := t.Body[0].(*ast.ExpressionStmt); ok {
				return stmt.Expr, true
			}
		}
	}
	return nil, false
}
