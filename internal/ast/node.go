package ast

import "github.com/vivax3794/viv-script-blog/internal/source"

// Loc records where a node came from.
type Loc struct {
	Span source.Span
}

// Location returns the node span.
func (l Loc) Location() source.Span { return l.Span }

// Node is implemented by every syntax tree node.
type Node interface {
	Location() source.Span
}

// Module is an ordered sequence of top-level functions.
type Module struct {
	Loc
	Functions []*Function
}

// Function is a '$ { ... }' block. Name is assigned by the parser in source
// order (fn0, fn1, ...), since the surface syntax has no function names.
type Function struct {
	Loc
	Name string
	Body []Stmt
}
