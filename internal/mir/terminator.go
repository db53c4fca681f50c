package mir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermReturn
	TermGoto
	TermIf
	TermUnreachable
)

type Terminator struct {
	Kind TermKind

	Goto        GotoTerm
	If          IfTerm
	Unreachable struct{}
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Cond Operand
	Then BlockID
	Else BlockID
}

// Successors returns the blocks control may transfer to.
func (t *Terminator) Successors() []BlockID {
	switch t.Kind {
	case TermGoto:
		return []BlockID{t.Goto.Target}
	case TermIf:
		return []BlockID{t.If.Then, t.If.Else}
	default:
		return nil
	}
}
