// Package walk provides the depth-first traversal runtime used to rewrite
// template trees. Apply visits every node in pre-order, hands each one to the
// caller through a Cursor that supports in-place replacement, honours a
// per-visit skip-subtree verdict, and clears transient traversal flags on
// exit from every node, including skipped ones.
//
// Identifier slots that name structure rather than value (member properties,
// function parameters, declaration names) are not visited: they can only hold
// identifiers, so rewrites there are the caller's concern on entry to the
// owning node. The walk performs no scope or binding analysis of any kind:
// trees are treated as structural snippets.
package walk
