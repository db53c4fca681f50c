package mir

const maxOptRounds = 8

// Optimize folds constants and simplifies control flow in every function of
// the module. Runtime traps are never folded away: a division whose divisor
// is known to be zero still reaches its trap block.
func Optimize(m *Module) {
	if m == nil {
		return
	}
	for _, f := range m.Funcs {
		OptimizeFunc(f)
	}
}

// OptimizeFunc runs constant propagation, branch folding and SimplifyCFG to a
// fixed point, then drops assignments to temporaries nobody reads and
// collapses the blocks that leaves empty.
func OptimizeFunc(f *Func) {
	if f == nil {
		return
	}
	for range maxOptRounds {
		changed := propagateConstants(f)
		if foldBranches(f) {
			changed = true
		}
		before := len(f.Blocks)
		SimplifyCFG(f)
		if !changed && len(f.Blocks) == before {
			break
		}
	}
	removeDeadTemps(f)
	SimplifyCFG(f)
}

// propagateConstants replaces reads of single-assignment temporaries whose
// value folds to a constant. User variables are left alone.
func propagateConstants(f *Func) bool {
	defs := make([]int, len(f.Locals))
	forEachAssign(f, func(ins *AssignInstr) {
		if ins.Dst.IsValid() && int(ins.Dst.Local) < len(defs) {
			defs[ins.Dst.Local]++
		}
	})

	known := make(map[LocalID]Operand)
	changed := false
	for progress := true; progress; {
		progress = false
		for i := range f.Blocks {
			bb := &f.Blocks[i]
			for j := range bb.Instrs {
				ins := &bb.Instrs[j]
				if substituteInstr(ins, known) {
					changed = true
				}
				if ins.Kind != InstrAssign {
					continue
				}
				if folded, ok := foldRValue(&ins.Assign.Src); ok {
					if ins.Assign.Src.Kind != RValueUse || ins.Assign.Src.Use != folded {
						ins.Assign.Src = RValue{Kind: RValueUse, Use: folded}
						changed = true
					}
					dst := ins.Assign.Dst.Local
					if folded.Kind == OperandConst && isTemp(f, dst) && defs[dst] == 1 {
						if _, seen := known[dst]; !seen {
							known[dst] = folded
							progress = true
						}
					}
				}
			}
			if bb.Term.Kind == TermIf && substitute(&bb.Term.If.Cond, known) {
				changed = true
			}
		}
	}
	return changed
}

func isTemp(f *Func, id LocalID) bool {
	return id >= 0 && int(id) < len(f.Locals) && f.Locals[id].Flags&LocalFlagTemp != 0
}

func forEachAssign(f *Func, fn func(*AssignInstr)) {
	for i := range f.Blocks {
		for j := range f.Blocks[i].Instrs {
			if ins := &f.Blocks[i].Instrs[j]; ins.Kind == InstrAssign {
				fn(&ins.Assign)
			}
		}
	}
}

func forEachOperand(ins *Instr, fn func(*Operand)) {
	switch ins.Kind {
	case InstrAssign:
		rv := &ins.Assign.Src
		switch rv.Kind {
		case RValueUse:
			fn(&rv.Use)
		case RValueUnaryOp:
			fn(&rv.Unary.Operand)
		case RValueBinaryOp:
			fn(&rv.Binary.Left)
			fn(&rv.Binary.Right)
		case RValueSelect:
			fn(&rv.Select.Cond)
			fn(&rv.Select.Then)
			fn(&rv.Select.Else)
		}
	case InstrCall:
		for i := range ins.Call.Args {
			fn(&ins.Call.Args[i])
		}
	}
}

func substituteInstr(ins *Instr, known map[LocalID]Operand) bool {
	changed := false
	forEachOperand(ins, func(op *Operand) {
		if substitute(op, known) {
			changed = true
		}
	})
	return changed
}

func substitute(op *Operand, known map[LocalID]Operand) bool {
	if op.Kind != OperandCopy {
		return false
	}
	c, ok := known[op.Place.Local]
	if !ok {
		return false
	}
	*op = c
	return true
}

// foldRValue computes rv when its operands allow it. A partially constant
// and collapses to its other operand.
func foldRValue(rv *RValue) (Operand, bool) {
	switch rv.Kind {
	case RValueUse:
		return rv.Use, rv.Use.Kind == OperandConst
	case RValueUnaryOp:
		x := rv.Unary.Operand
		if x.Kind != OperandConst {
			return Operand{}, false
		}
		switch rv.Unary.Op {
		case UnNeg:
			return IntConst(-x.Const.IntValue), true
		case UnNot:
			return BoolConst(!x.Const.BoolValue), true
		}
	case RValueBinaryOp:
		return foldBinary(&rv.Binary)
	case RValueSelect:
		s := &rv.Select
		if s.Cond.Kind != OperandConst {
			return Operand{}, false
		}
		if s.Cond.Const.BoolValue {
			return s.Then, true
		}
		return s.Else, true
	}
	return Operand{}, false
}

func foldBinary(b *BinaryOp) (Operand, bool) {
	lc, rc := b.Left.Kind == OperandConst, b.Right.Kind == OperandConst
	if b.Op == BinAnd {
		switch {
		case lc && !b.Left.Const.BoolValue, rc && !b.Right.Const.BoolValue:
			return BoolConst(false), true
		case lc:
			return b.Right, true
		case rc:
			return b.Left, true
		}
		return Operand{}, false
	}
	if !lc || !rc {
		return Operand{}, false
	}
	x, y := b.Left.Const.IntValue, b.Right.Const.IntValue
	switch b.Op {
	case BinAdd:
		return IntConst(x + y), true
	case BinSub:
		return IntConst(x - y), true
	case BinMul:
		return IntConst(x * y), true
	case BinDiv:
		if y == 0 || (y == -1 && x == minInt32) {
			return Operand{}, false
		}
		return IntConst(x / y), true
	case BinEq:
		return BoolConst(x == y), true
	case BinNe:
		return BoolConst(x != y), true
	case BinLt:
		return BoolConst(x < y), true
	case BinLe:
		return BoolConst(x <= y), true
	case BinGt:
		return BoolConst(x > y), true
	case BinGe:
		return BoolConst(x >= y), true
	}
	return Operand{}, false
}

// foldBranches turns conditional branches on constants into gotos.
func foldBranches(f *Func) bool {
	changed := false
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		if term.Kind != TermIf || term.If.Cond.Kind != OperandConst {
			continue
		}
		target := term.If.Else
		if term.If.Cond.Const.BoolValue {
			target = term.If.Then
		}
		*term = Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}}
		changed = true
	}
	return changed
}

// removeDeadTemps deletes assignments to temporaries that are never read.
// Right-hand values have no side effects, so this is always safe.
func removeDeadTemps(f *Func) {
	for {
		used := make([]bool, len(f.Locals))
		mark := func(op *Operand) {
			if op.Kind == OperandCopy && op.Place.IsValid() && int(op.Place.Local) < len(used) {
				used[op.Place.Local] = true
			}
		}
		for i := range f.Blocks {
			bb := &f.Blocks[i]
			for j := range bb.Instrs {
				forEachOperand(&bb.Instrs[j], mark)
			}
			if bb.Term.Kind == TermIf {
				mark(&bb.Term.If.Cond)
			}
		}

		removed := false
		for i := range f.Blocks {
			bb := &f.Blocks[i]
			kept := bb.Instrs[:0]
			for _, ins := range bb.Instrs {
				if ins.Kind == InstrAssign && isTemp(f, ins.Assign.Dst.Local) && !used[ins.Assign.Dst.Local] {
					removed = true
					continue
				}
				kept = append(kept, ins)
			}
			bb.Instrs = kept
		}
		if !removed {
			return
		}
	}
}
