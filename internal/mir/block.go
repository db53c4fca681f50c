package mir

type Block struct {
	ID BlockID
	// Label names the role of the block in the lowered construct
	// (sc.rhs, assert.fail, ...). Empty for plain straight-line blocks.
	Label  string
	Instrs []Instr
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
