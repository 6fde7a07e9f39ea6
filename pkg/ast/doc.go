// Package ast defines the syntax tree for the snippet language templates are
// written in. The node set is a closed tagged union: every node carries a Kind
// tag, implements one of the Stmt/Expr marker interfaces, and embeds Base for
// position and traversal metadata. Trees are plain data, owned exclusively by
// their root; sharing a subtree between two trees is a caller bug.
package ast
