package ast

// Children returns the child nodes of n in source order. Structural name
// slots (member properties, function parameters, declaration names) are
// included; callers that treat them as opaque filter on their own terms.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Program:
		return stmtNodes(t.Body)
	case *ExpressionStmt:
		return []Node{t.Expr}
	case *ReturnStmt:
		if t.Value == nil {
			return nil
		}
		return []Node{t.Value}
	case *VarStmt:
		return []Node{t.Name, t.Value}
	case *IfStmt:
		out := []Node{t.Cond, t.Then}
		if t.Else != nil {
			out = append(out, t.Else)
		}
		return out
	case *BlockStmt:
		return stmtNodes(t.Body)
	case *Identifier, *NumberLit, *StringLit, *BoolLit, *NullLit:
		return nil
	case *ArrayLit:
		return exprNodes(t.Elems)
	case *CallExpr:
		out := make([]Node, 0, len(t.Args)+1)
		out = append(out, t.Callee)
		return append(out, exprNodes(t.Args)...)
	case *MemberExpr:
		return []Node{t.Object, t.Property}
	case *AssignExpr:
		return []Node{t.Target, t.Value}
	case *BinaryExpr:
		return []Node{t.Left, t.Right}
	case *FuncExpr:
		out := make([]Node, 0, len(t.Params)+1)
		for _, p := range t.Params {
			out = append(out, p)
		}
		return append(out, t.Body)
	default:
		return nil
	}
}

// Inspect walks the tree rooted at n in depth-first pre-order, calling f for
// every node. If f returns false the children of that node are not visited.
// Unlike pkg/walk this is a read-only walk: no replacement, no flag handling.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Sanitize strips everything that is not part of a tree's identity: source
// positions and transient traversal flags, on every node. Two parses of the
// same text sanitize to structurally indistinguishable trees, which is what
// makes cached templates stable and comparable.
func Sanitize(n Node) {
	Inspect(n, func(c Node) bool {
		*c.Meta() = Base{}
		return true
	})
}

func stmtNodes(stmts []Stmt) []Node {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprNodes(exprs []Expr) []Node {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
