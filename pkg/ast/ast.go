package ast

// Kind tags every node with its syntactic category. The set is closed:
// consumers dispatch on Kind (or on the concrete type) with exhaustive
// switches, and the codec uses the same tags as its wire discriminator.
type Kind string

const (
	KindProgram        Kind = "Program"
	KindExpressionStmt Kind = "ExpressionStatement"
	KindReturnStmt     Kind = "ReturnStatement"
	KindVarStmt        Kind = "VariableDeclaration"
	KindIfStmt         Kind = "IfStatement"
	KindBlockStmt      Kind = "BlockStatement"
	KindIdentifier     Kind = "Identifier"
	KindNumberLit      Kind = "NumericLiteral"
	KindStringLit      Kind = "StringLiteral"
	KindBoolLit        Kind = "BooleanLiteral"
	KindNullLit        Kind = "NullLiteral"
	KindArrayLit       Kind = "ArrayExpression"
	KindCallExpr       Kind = "CallExpression"
	KindMemberExpr     Kind = "MemberExpression"
	KindAssignExpr     Kind = "AssignmentExpression"
	KindBinaryExpr     Kind = "BinaryExpression"
	KindFuncExpr       Kind = "FunctionExpression"
)

// Base carries the source position recorded by the parser plus the transient
// traversal flags used by the walker. None of it is part of a node's identity:
// the codec never serialises it, the sanitizer strips it, and the walker
// guarantees the flags are cleared again on exit from every node.
type Base struct {
	Line int `json:"-"`
	Col  int `json:"-"`

	// Skip marks a subtree the current walk must not descend into. Visited
	// marks a node the current walk has entered. Both are walk-local.
	Skip    bool `json:"-"`
	Visited bool `json:"-"`
}

// Meta exposes the embedded Base so generic code (walker, sanitizer) can
// reach a node's position and flags without a type switch.
func (b *Base) Meta() *Base { return b }

// Node is implemented by every syntax node.
type Node interface {
	Kind() Kind
	Meta() *Base
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of every parsed template: an ordered statement list.
type Program struct {
	Base
	Body []Stmt
}

func (*Program) Kind() Kind { return KindProgram }

// ExpressionStmt wraps an expression used in statement position.
type ExpressionStmt struct {
	Base
	Expr Expr
}

func (*ExpressionStmt) Kind() Kind { return KindExpressionStmt }
func (*ExpressionStmt) stmtNode()  {}

// ReturnStmt is a return statement. Value is nil for a bare `return;`.
type ReturnStmt struct {
	Base
	Value Expr
}

func (*ReturnStmt) Kind() Kind { return KindReturnStmt }
func (*ReturnStmt) stmtNode()  {}

// VarStmt declares a single variable with an initialiser.
type VarStmt struct {
	Base
	Name  *Identifier
	Value Expr
}

func (*VarStmt) Kind() Kind { return KindVarStmt }
func (*VarStmt) stmtNode()  {}

// IfStmt is a conditional statement. Else is nil when absent.
type IfStmt struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) Kind() Kind { return KindIfStmt }
func (*IfStmt) stmtNode()  {}

// BlockStmt is a braced statement sequence.
type BlockStmt struct {
	Base
	Body []Stmt
}

func (*BlockStmt) Kind() Kind { return KindBlockStmt }
func (*BlockStmt) stmtNode()  {}

// Identifier is a name in value position. Placeholder matching operates on
// this kind exclusively.
type Identifier struct {
	Base
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }
func (*Identifier) exprNode()  {}

// NumberLit is a numeric literal. Raw preserves the source spelling so
// cache round-trips do not reformat numbers.
type NumberLit struct {
	Base
	Value float64
	Raw   string
}

func (*NumberLit) Kind() Kind { return KindNumberLit }
func (*NumberLit) exprNode()  {}

// StringLit is a string literal holding the decoded value.
type StringLit struct {
	Base
	Value string
}

func (*StringLit) Kind() Kind { return KindStringLit }
func (*StringLit) exprNode()  {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Base
	Value bool
}

func (*BoolLit) Kind() Kind { return KindBoolLit }
func (*BoolLit) exprNode()  {}

// NullLit is the `null` literal.
type NullLit struct {
	Base
}

func (*NullLit) Kind() Kind { return KindNullLit }
func (*NullLit) exprNode()  {}

// ArrayLit is an array literal.
type ArrayLit struct {
	Base
	Elems []Expr
}

func (*ArrayLit) Kind() Kind { return KindArrayLit }
func (*ArrayLit) exprNode()  {}

// CallExpr is a call with positional arguments.
type CallExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*CallExpr) Kind() Kind { return KindCallExpr }
func (*CallExpr) exprNode()  {}

// MemberExpr is dotted member access. Property is a name slot rather than a
// value position; the walker does not descend into it (see pkg/walk).
type MemberExpr struct {
	Base
	Object   Expr
	Property *Identifier
}

func (*MemberExpr) Kind() Kind { return KindMemberExpr }
func (*MemberExpr) exprNode()  {}

// AssignExpr is a simple assignment. Target is an Identifier or MemberExpr;
// the parser rejects anything else.
type AssignExpr struct {
	Base
	Target Expr
	Value  Expr
}

func (*AssignExpr) Kind() Kind { return KindAssignExpr }
func (*AssignExpr) exprNode()  {}

// BinaryExpr is a binary operation with a source-level operator token.
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) Kind() Kind { return KindBinaryExpr }
func (*BinaryExpr) exprNode()  {}

// FuncExpr is an anonymous function expression.
type FuncExpr struct {
	Base
	Params []*Identifier
	Body   *BlockStmt
}

func (*FuncExpr) Kind() Kind { return KindFuncExpr }
func (*FuncExpr) exprNode()  {}
