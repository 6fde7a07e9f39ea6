package ast

import "github.com/mohae/deepcopy"

// Clone returns a deep, independent copy of n. The copy shares no mutable
// state with its source, so mutating it never affects the original tree.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	return deepcopy.Copy(n).(Node)
}

// CloneProgram is Clone specialised to a template root.
func CloneProgram(p *Program) *Program {
	if p == nil {
		return nil
	}
	return deepcopy.Copy(p).(*Program)
}
