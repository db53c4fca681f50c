package mir

import "github.com/vivax3794/viv-script-blog/internal/ir"

// Func is one lowered '$ { ... }' block. It takes no arguments and returns
// nothing; the backend gives it an i32 0 return for the C ABI.
type Func struct {
	ID   FuncID
	Name string

	Locals []Local
	Blocks []Block
	Entry  BlockID

	// VarLocals maps resolver identifiers to their slots.
	VarLocals map[ir.VariableID]LocalID
}

func (f *Func) Block(id BlockID) *Block {
	if f == nil || id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
