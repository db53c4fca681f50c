package ir

import "github.com/vivax3794/viv-script-blog/internal/source"

// Stmt is one of *Print, *Assert, *Assign.
type Stmt interface {
	stmt()
}

// Print writes Value using a template chosen by its static type.
type Print struct {
	Value Expr
}

// Assert aborts the program when Cond is false.
type Assert struct {
	Cond       BoolExpr
	HasMessage bool
	Message    string
	Span       source.Span
}

// Assign stores Value into the slot Target. Both declarations and
// reassignments lower to Assign.
type Assign struct {
	Target VariableID
	Value  Expr
}

func (*Print) stmt()  {}
func (*Assert) stmt() {}
func (*Assign) stmt() {}

// Local is one entry of a function's locals table.
type Local struct {
	ID   VariableID
	Type Type
	// Name is the surface name; empty for synthesized temporaries.
	Name string
}

// Synthetic reports whether the local was introduced by the resolver.
func (l Local) Synthetic() bool { return l.Name == "" }

// Function is a resolved '$ { ... }' block.
type Function struct {
	Name   string
	Body   []Stmt
	Locals []Local
}

// TypeOf returns the type recorded for id in this function.
func (f *Function) TypeOf(id VariableID) (Type, bool) {
	for _, l := range f.Locals {
		if l.ID == id {
			return l.Type, true
		}
	}
	return 0, false
}

// Module is the resolved program.
type Module struct {
	Functions []*Function
}
