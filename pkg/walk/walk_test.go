package walk

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

func program() *ast.Program {
	// var x = f(a); return x;
	return &ast.Program{
		Body: []ast.Stmt{
			&ast.VarStmt{
				Name: &ast.Identifier{Name: "x"},
				Value: &ast.CallExpr{
					Callee: &ast.Identifier{Name: "f"},
					Args:   []ast.Expr{&ast.Identifier{Name: "a"}},
				},
			},
			&ast.ReturnStmt{Value: &ast.Identifier{Name: "x"}},
		},
	}
}

func TestApplyVisitsPreOrder(t *testing.T) {
	var kinds []ast.Kind
	Apply(program(), func(c *Cursor) Verdict {
		kinds = append(kinds, c.Node().Kind())
		return Continue
	}, nil)

	want := []ast.Kind{
		ast.KindProgram,
		ast.KindVarStmt,
		ast.KindCallExpr,
		ast.KindIdentifier, // f
		ast.KindIdentifier, // a
		ast.KindReturnStmt,
		ast.KindIdentifier, // x
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
}

func TestApplySkipChildren(t *testing.T) {
	var kinds []ast.Kind
	Apply(program(), func(c *Cursor) Verdict {
		kinds = append(kinds, c.Node().Kind())
		if c.Node().Kind() == ast.KindVarStmt {
			return SkipChildren
		}
		return Continue
	}, nil)

	want := []ast.Kind{
		ast.KindProgram,
		ast.KindVarStmt,
		ast.KindReturnStmt,
		ast.KindIdentifier,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
}

func TestApplyReplaceExpressionSlot(t *testing.T) {
	prog := program()
	Apply(prog, func(c *Cursor) Verdict {
		if id, ok := c.Node().(*ast.Identifier); ok && id.Name == "a" {
			c.Replace(&ast.NumberLit{Value: 7, Raw: "7"})
			return SkipChildren
		}
		return Continue
	}, nil)

	call := prog.Body[0].(*ast.VarStmt).Value.(*ast.CallExpr)
	want := &ast.NumberLit{Value: 7, Raw: "7"}
	if diff := cmp.Diff(want, call.Args[0]); diff != "" {
		t.Fatalf("argument not replaced (-want +got):\n%s", diff)
	}
}

func TestApplyReplaceStatementSlot(t *testing.T) {
	prog := program()
	Apply(prog, func(c *Cursor) Verdict {
		if c.Node().Kind() == ast.KindReturnStmt {
			c.Replace(&ast.ExpressionStmt{Expr: &ast.Identifier{Name: "done"}})
			return SkipChildren
		}
		return Continue
	}, nil)

	want := &ast.ExpressionStmt{Expr: &ast.Identifier{Name: "done"}}
	if diff := cmp.Diff(want, prog.Body[1]); diff != "" {
		t.Fatalf("statement not replaced (-want +got):\n%s", diff)
	}
}

func TestApplyReplacedSubtreeNotDescended(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{
		&ast.ExpressionStmt{Expr: &ast.Identifier{Name: "slot"}},
	}}

	var visited []string
	Apply(prog, func(c *Cursor) Verdict {
		if id, ok := c.Node().(*ast.Identifier); ok {
			visited = append(visited, id.Name)
			if id.Name == "slot" {
				// The replacement contains the same identifier; skipping must
				// keep the walk from rescanning it forever.
				c.Replace(&ast.CallExpr{Callee: &ast.Identifier{Name: "slot"}})
				return SkipChildren
			}
		}
		return Continue
	}, nil)

	want := []string{"slot"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Fatalf("identifiers visited (-want +got):\n%s", diff)
	}
}

func TestApplyFlagsDuringAndAfterWalk(t *testing.T) {
	prog := program()
	Apply(prog, func(c *Cursor) Verdict {
		if c.Parent() != nil && !c.Parent().Meta().Visited {
			t.Fatalf("parent %s not flagged visited while visiting %s", c.Parent().Kind(), c.Node().Kind())
		}
		return Continue
	}, func(c *Cursor) {
		meta := c.Node().Meta()
		if meta.Visited || meta.Skip {
			t.Fatalf("node %s exited with flags %+v", c.Node().Kind(), *meta)
		}
	})

	ast.Inspect(prog, func(n ast.Node) bool {
		meta := n.Meta()
		if meta.Visited || meta.Skip {
			t.Fatalf("node %s kept flags after walk: %+v", n.Kind(), *meta)
		}
		return true
	})
}

func TestApplySkipFlagClearedAfterSkip(t *testing.T) {
	prog := program()
	Apply(prog, func(c *Cursor) Verdict {
		if c.Node().Kind() == ast.KindVarStmt {
			return SkipChildren
		}
		return Continue
	}, nil)

	ast.Inspect(prog, func(n ast.Node) bool {
		if n.Meta().Skip {
			t.Fatalf("node %s kept skip flag", n.Kind())
		}
		return true
	})
}

func TestApplyExitHookRunsPostOrder(t *testing.T) {
	var exited []ast.Kind
	Apply(program(), func(*Cursor) Verdict { return Continue }, func(c *Cursor) {
		exited = append(exited, c.Node().Kind())
	})

	want := []ast.Kind{
		ast.KindIdentifier, // f
		ast.KindIdentifier, // a
		ast.KindCallExpr,
		ast.KindVarStmt,
		ast.KindIdentifier, // x
		ast.KindReturnStmt,
		ast.KindProgram,
	}
	if diff := cmp.Diff(want, exited); diff != "" {
		t.Fatalf("exit order (-want +got):\n%s", diff)
	}
}

func TestApplyRootReplacement(t *testing.T) {
	root := ast.Node(&ast.Identifier{Name: "before"})
	out := Apply(root, func(c *Cursor) Verdict {
		if c.Parent() == nil {
			c.Replace(&ast.Identifier{Name: "after"})
			return SkipChildren
		}
		return Continue
	}, nil)

	id, ok := out.(*ast.Identifier)
	if !ok || id.Name != "after" {
		t.Fatalf("root replacement not returned, got %#v", out)
	}
}

func TestReplaceTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for statement in expression slot")
		}
	}()
	Apply(program(), func(c *Cursor) Verdict {
		if id, ok := c.Node().(*ast.Identifier); ok && id.Name == "a" {
			c.Replace(&ast.ReturnStmt{})
		}
		return Continue
	}, nil)
}

func TestApplyNilRootOrHook(t *testing.T) {
	if out := Apply(nil, func(*Cursor) Verdict { return Continue }, nil); out != nil {
		t.Fatalf("nil root should return nil")
	}
	prog := program()
	if out := Apply(prog, nil, nil); out != prog {
		t.Fatalf("nil enter hook should return root unchanged")
	}
}
