package walk

import (
	"fmt"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

// Verdict is returned by the enter hook to steer the walk.
type Verdict int

const (
	// Continue descends into the current node's children.
	Continue Verdict = iota
	// SkipChildren leaves the current node's subtree unvisited. The walker
	// records the decision on the node's transient Skip flag for the
	// remainder of the visit and clears it again on exit.
	SkipChildren
)

// Cursor describes the node currently being visited and allows replacing it
// in its parent slot. A Cursor is only valid for the duration of the hook
// invocation it is passed to.
type Cursor struct {
	node   ast.Node
	parent ast.Node
	set    func(ast.Node)
}

// Node returns the current node. After Replace it returns the replacement.
func (c *Cursor) Node() ast.Node { return c.node }

// Parent returns the parent of the current node, or nil at the root.
func (c *Cursor) Parent() ast.Node { return c.parent }

// Replace swaps the current node for n in its parent slot. The replacement
// must satisfy the slot's type (a statement slot takes ast.Stmt, an
// expression slot ast.Expr); a mismatch panics, as it would leave the tree
// ill-formed. Children of the replacement are walked only if the enter hook
// returns Continue.
func (c *Cursor) Replace(n ast.Node) {
	c.set(n)
	c.node = n
}

// Apply walks the tree rooted at root in depth-first pre-order. The enter
// hook runs before a node's children are visited and its verdict decides
// whether they are; the exit hook, if non-nil, runs after. On every exit
// path the walker resets the node's transient flags, so no walk-local state
// survives into a later traversal of the same tree.
//
// Apply returns the root, or its replacement if the enter hook replaced it.
// A nil root or a nil enter hook makes the walk a no-op.
func Apply(root ast.Node, enter func(*Cursor) Verdict, exit func(*Cursor)) ast.Node {
	if root == nil || enter == nil {
		return root
	}
	a := &applier{enter: enter, exit: exit}
	out := root
	a.visit(root, nil, func(n ast.Node) { out = n })
	return out
}

type applier struct {
	enter func(*Cursor) Verdict
	exit  func(*Cursor)
}

func (a *applier) visit(n ast.Node, parent ast.Node, set func(ast.Node)) {
	if n == nil {
		return
	}
	c := &Cursor{node: n, parent: parent, set: set}
	verdict := a.enter(c)

	// The cursor may now point at a replacement; all bookkeeping from here
	// on applies to whatever occupies the slot.
	meta := c.node.Meta()
	meta.Visited = true
	if verdict == SkipChildren {
		meta.Skip = true
	} else {
		a.children(c.node)
	}
	meta.Skip = false
	meta.Visited = false

	if a.exit != nil {
		a.exit(c)
	}
}

func (a *applier) children(n ast.Node) {
	switch t := n.(type) {
	case *ast.Program:
		a.stmtList(t, t.Body)
	case *ast.ExpressionStmt:
		a.visit(t.Expr, t, func(nn ast.Node) { t.Expr = mustExpr(nn) })
	case *ast.ReturnStmt:
		if t.Value != nil {
			a.visit(t.Value, t, func(nn ast.Node) { t.Value = mustExpr(nn) })
		}
	case *ast.VarStmt:
		a.visit(t.Value, t, func(nn ast.Node) { t.Value = mustExpr(nn) })
	case *ast.IfStmt:
		a.visit(t.Cond, t, func(nn ast.Node) { t.Cond = mustExpr(nn) })
		a.visit(t.Then, t, func(nn ast.Node) { t.Then = mustStmt(nn) })
		if t.Else != nil {
			a.visit(t.Else, t, func(nn ast.Node) { t.Else = mustStmt(nn) })
		}
	case *ast.BlockStmt:
		a.stmtList(t, t.Body)
	case *ast.ArrayLit:
		a.exprList(t, t.Elems)
	case *ast.CallExpr:
		a.visit(t.Callee, t, func(nn ast.Node) { t.Callee = mustExpr(nn) })
		a.exprList(t, t.Args)
	case *ast.MemberExpr:
		a.visit(t.Object, t, func(nn ast.Node) { t.Object = mustExpr(nn) })
	case *ast.AssignExpr:
		a.visit(t.Target, t, func(nn ast.Node) { t.Target = mustExpr(nn) })
		a.visit(t.Value, t, func(nn ast.Node) { t.Value = mustExpr(nn) })
	case *ast.BinaryExpr:
		a.visit(t.Left, t, func(nn ast.Node) { t.Left = mustExpr(nn) })
		a.visit(t.Right, t, func(nn ast.Node) { t.Right = mustExpr(nn) })
	case *ast.FuncExpr:
		a.visit(t.Body, t, func(nn ast.Node) {
			block, ok := nn.(*ast.BlockStmt)
			if !ok {
				panic(fmt.Sprintf("walk: cannot place %s in function body slot", nn.Kind()))
			}
			t.Body = block
		})
	case *ast.Identifier, *ast.NumberLit, *ast.StringLit, *ast.BoolLit, *ast.NullLit:
		// leaves
	}
}

func (a *applier) stmtList(parent ast.Node, list []ast.Stmt) {
	for i := range list {
		a.visit(list[i], parent, func(nn ast.Node) { list[i] = mustStmt(nn) })
	}
}

func (a *applier) exprList(parent ast.Node, list []ast.Expr) {
	for i := range list {
		a.visit(list[i], parent, func(nn ast.Node) { list[i] = mustExpr(nn) })
	}
}

func mustStmt(n ast.Node) ast.Stmt {
	stmt, ok := n.(ast.Stmt)
	if !ok {
		panic(fmt.Sprintf("walk: cannot place %s in statement slot", n.Kind()))
	}
	return stmt
}

func mustExpr(n ast.Node) ast.Expr {
	expr, ok := n.(ast.Expr)
	if !ok {
		panic(fmt.Sprintf("walk: cannot place %s in expression slot", n.Kind()))
	}
	return expr
}
