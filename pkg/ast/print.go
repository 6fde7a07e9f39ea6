package ast

import (
	"strconv"
	"strings"
)

// Print renders a node back to snippet source. The output is canonical
// (single spaces, semicolon-terminated statements, parentheses only where
// precedence requires them) rather than a faithful reproduction of the
// original text; reparsing it yields a structurally identical tree.
func Print(n Node) string {
	var b strings.Builder
	printNode(&b, n, 0)
	return b.String()
}

func printNode(b *strings.Builder, n Node, depth int) {
	switch t := n.(type) {
	case *Program:
		printStmts(b, t.Body, depth)
	case *ExpressionStmt:
		indent(b, depth)
		printNode(b, t.Expr, depth)
		b.WriteString(";")
	case *ReturnStmt:
		indent(b, depth)
		b.WriteString("return")
		if t.Value != nil {
			b.WriteString(" ")
			printNode(b, t.Value, depth)
		}
		b.WriteString(";")
	case *VarStmt:
		indent(b, depth)
		b.WriteString("var ")
		b.WriteString(t.Name.Name)
		b.WriteString(" = ")
		printNode(b, t.Value, depth)
		b.WriteString(";")
	case *IfStmt:
		indent(b, depth)
		b.WriteString("if (")
		printNode(b, t.Cond, depth)
		b.WriteString(") ")
		printBare(b, t.Then, depth)
		if t.Else != nil {
			b.WriteString(" else ")
			printBare(b, t.Else, depth)
		}
	case *BlockStmt:
		indent(b, depth)
		printBlock(b, t, depth)
	case *Identifier:
		b.WriteString(t.Name)
	case *NumberLit:
		if t.Raw != "" {
			b.WriteString(t.Raw)
		} else {
			b.WriteString(strconv.FormatFloat(t.Value, 'g', -1, 64))
		}
	case *StringLit:
		b.WriteString(strconv.Quote(t.Value))
	case *BoolLit:
		b.WriteString(strconv.FormatBool(t.Value))
	case *NullLit:
		b.WriteString("null")
	case *ArrayLit:
		b.WriteString("[")
		for i, e := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, e, depth)
		}
		b.WriteString("]")
	case *CallExpr:
		printNode(b, t.Callee, depth)
		b.WriteString("(")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, a, depth)
		}
		b.WriteString(")")
	case *MemberExpr:
		printNode(b, t.Object, depth)
		b.WriteString(".")
		b.WriteString(t.Property.Name)
	case *AssignExpr:
		printNode(b, t.Target, depth)
		b.WriteString(" = ")
		printNode(b, t.Value, depth)
	case *BinaryExpr:
		printOperand(b, t.Left, t.Op, false, depth)
		b.WriteString(" " + t.Op + " ")
		printOperand(b, t.Right, t.Op, true, depth)
	case *FuncExpr:
		b.WriteString("function (")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
		}
		b.WriteString(") ")
		printBlock(b, t.Body, depth)
	}
}

// binaryPrec mirrors the parser's operator precedence table so printed
// operands are parenthesized exactly where the grammar needs them.
var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6,
}

// printOperand parenthesizes a binary operand that would rebind if printed
// bare: a lower-precedence subexpression, an equal-precedence one on the
// right of a left-associative operator, or a nested assignment.
func printOperand(b *strings.Builder, e Expr, parentOp string, right bool, depth int) {
	if operandNeedsParens(e, parentOp, right) {
		b.WriteString("(")
		printNode(b, e, depth)
		b.WriteString(")")
		return
	}
	printNode(b, e, depth)
}

func operandNeedsParens(e Expr, parentOp string, right bool) bool {
	switch t := e.(type) {
	case *AssignExpr:
		return true
	case *BinaryExpr:
		if binaryPrec[t.Op] != binaryPrec[parentOp] {
			return binaryPrec[t.Op] < binaryPrec[parentOp]
		}
		return right
	}
	return false
}

// printBare renders a statement without its leading indentation, for use
// after `if (...)` and `else` on the same line.
func printBare(b *strings.Builder, s Stmt, depth int) {
	if block, ok := s.(*BlockStmt); ok {
		printBlock(b, block, depth)
		return
	}
	var inner strings.Builder
	printNode(&inner, s, 0)
	b.WriteString(strings.TrimLeft(inner.String(), " "))
}

func printBlock(b *strings.Builder, block *BlockStmt, depth int) {
	if len(block.Body) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	printStmts(b, block.Body, depth+1)
	b.WriteString("\n")
	indent(b, depth)
	b.WriteString("}")
}

func printStmts(b *strings.Builder, stmts []Stmt, depth int) {
	for i, s := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		printNode(b, s, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
