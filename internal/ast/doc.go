// Package ast holds the StoryScript syntax tree.
//
// Nodes live in per-family arenas owned by a Builder. A header (Expr, Stmt,
// Decl) records the node kind and span and points at a kind-specific payload
// arena; typed accessors such as Exprs.Binary return (nil, false) when the
// kind does not match. IDs are 1-based, the zero ID means "absent".
//
// Every child ID is referenced by exactly one parent, so the tree is acyclic.
// Payload slices are copied on construction and tokens are stored by value.
package ast
