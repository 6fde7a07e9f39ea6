// Package template implements the template instantiation engine: a store of
// named, pre-parsed snippet trees plus the machinery to clone one, splice
// caller-supplied fragments over its placeholder identifiers, and normalise
// the output shape for splicing into a host program.
//
// Templates load exactly once per Engine, from a precompiled JSON cache when
// one exists and otherwise by parsing every file in a templates directory.
// The stored trees are canonical and never mutated after load; every
// instantiation works on a deep clone.
package template
