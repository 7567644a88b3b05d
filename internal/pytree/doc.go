// Package pytree holds the syntax tree the blank-line engine walks.
//
// Trees are produced by an external parser in the lib2to3 shape: composites
// carry a grammar symbol (file_input, classdef, funcdef, suite, ...), leaves
// carry a token name, a value and a 1-based line / 0-based column. Composites
// take the position of their first leaf.
//
// Nodes live in an Arena and are addressed by NodeID (1-based, NoNode = 0).
// Parent links are arena indices set exactly once by the Builder, so a Tree
// is never cyclic. The only mutable part of a finished Tree is the per-node
// Newlines annotation slot.
package pytree
