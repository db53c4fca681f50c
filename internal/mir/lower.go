package mir

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/vivax3794/viv-script-blog/internal/ir"
)

// Runtime message templates. Every template ends in a newline.
const (
	FormatInt         = "%d\n"
	FormatStr         = "%s\n"
	FormatAssertMsg   = "assertion failed: %s\n"
	FormatAssert      = "assertion failed\n"
	FormatDivZero     = "runtime error: division by zero\n"
	FormatDivOverflow = "runtime error: integer overflow\n"
	boolTrueText      = "true"
	boolFalseText     = "false"
)

const minInt32 int32 = -1 << 31

// Block labels.
const (
	LabelEntry      = "entry"
	LabelShortRHS   = "sc.rhs"
	LabelShortConst = "sc.short"
	LabelShortEnd   = "sc.end"
	LabelAssertFail = "assert.fail"
	LabelAssertOK   = "assert.ok"
	LabelDivZero    = "div.zero"
	LabelDivCheck   = "div.check"
	LabelDivOvf     = "div.overflow"
	LabelDivOK      = "div.ok"
)

// LowerModule converts resolved IR to MIR. Functions keep source order.
func LowerModule(mod *ir.Module) (*Module, error) {
	out := &Module{Externs: RuntimeExterns()}
	if mod == nil {
		return out, nil
	}
	for i, fn := range mod.Functions {
		id, err := safecast.Conv[int32](i)
		if err != nil {
			return nil, fmt.Errorf("mir: function id overflow: %w", err)
		}
		l := &funcLowerer{}
		f, err := l.lowerFunc(FuncID(id), fn)
		if err != nil {
			return nil, fmt.Errorf("mir: %s: %w", fn.Name, err)
		}
		out.Funcs = append(out.Funcs, f)
	}
	return out, nil
}

type funcLowerer struct {
	f   *Func
	cur BlockID

	nextTemp uint32

	// ловушки деления общие на всю функцию
	divZeroBB BlockID
	divOvfBB  BlockID
}

func (l *funcLowerer) lowerFunc(id FuncID, fn *ir.Function) (*Func, error) {
	l.f = &Func{
		ID:        id,
		Name:      fn.Name,
		VarLocals: make(map[ir.VariableID]LocalID, len(fn.Locals)),
	}
	l.divZeroBB = NoBlockID
	l.divOvfBB = NoBlockID

	// Every resolver slot gets a local up front so the backend can place all
	// stack slots in the entry block.
	for _, v := range fn.Locals {
		flags := LocalFlagUser
		name := v.Name
		if v.Synthetic() {
			flags = LocalFlagTemp
			name = v.ID.String()
		}
		l.f.VarLocals[v.ID] = l.addLocal(Local{Type: lowerType(v.Type), Flags: flags, Name: name})
	}

	entry := l.newBlock(LabelEntry)
	l.f.Entry = entry
	l.cur = entry

	for _, st := range fn.Body {
		if err := l.lowerStmt(st); err != nil {
			return nil, err
		}
	}

	if !l.curBlock().Terminated() {
		l.setTerm(&Terminator{Kind: TermReturn})
	}
	for i := range l.f.Blocks {
		if l.f.Blocks[i].Term.Kind == TermNone {
			l.f.Blocks[i].Term.Kind = TermUnreachable
		}
	}
	return l.f, nil
}

func lowerType(t ir.Type) Type {
	if t == ir.TypeBool {
		return TypeBool
	}
	return TypeI32
}

func (l *funcLowerer) curBlock() *Block {
	return l.f.Block(l.cur)
}

func (l *funcLowerer) newBlock(label string) BlockID {
	raw, err := safecast.Conv[int32](len(l.f.Blocks))
	if err != nil {
		panic(fmt.Errorf("mir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	l.f.Blocks = append(l.f.Blocks, Block{ID: id, Label: label, Term: Terminator{Kind: TermNone}})
	return id
}

func (l *funcLowerer) startBlock(id BlockID) {
	l.cur = id
}

func (l *funcLowerer) setTerm(t *Terminator) {
	b := l.curBlock()
	if b == nil || b.Terminated() || t == nil {
		return
	}
	b.Term = *t
}

func (l *funcLowerer) emit(ins *Instr) {
	b := l.curBlock()
	if b == nil || b.Terminated() || ins == nil {
		return
	}
	b.Instrs = append(b.Instrs, *ins)
}

func (l *funcLowerer) addLocal(local Local) LocalID {
	raw, err := safecast.Conv[int32](len(l.f.Locals))
	if err != nil {
		panic(fmt.Errorf("mir: local id overflow: %w", err))
	}
	l.f.Locals = append(l.f.Locals, local)
	return LocalID(raw)
}

func (l *funcLowerer) newTemp(ty Type) LocalID {
	l.nextTemp++
	return l.addLocal(Local{Type: ty, Flags: LocalFlagTemp, Name: fmt.Sprintf("tmp%d", l.nextTemp)})
}

func (l *funcLowerer) assign(dst LocalID, src RValue) {
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{Dst: Place{Local: dst}, Src: src}})
}

// compute stores rv into a fresh temporary and returns a copy of it.
func (l *funcLowerer) compute(rv RValue) Operand {
	ty := rv.Type()
	tmp := l.newTemp(ty)
	l.assign(tmp, rv)
	return Copy(tmp, ty)
}

func (l *funcLowerer) call(name string, args ...Operand) {
	l.emit(&Instr{Kind: InstrCall, Call: CallInstr{Callee: Callee{Name: name}, Args: args}})
}

func (l *funcLowerer) varLocal(id ir.VariableID) (LocalID, error) {
	local, ok := l.f.VarLocals[id]
	if !ok {
		return NoLocalID, fmt.Errorf("no slot for %s", id)
	}
	return local, nil
}

// abortWith prints the message, flushes stdio and aborts. The current block
// ends in unreachable.
func (l *funcLowerer) abortWith(args ...Operand) {
	l.call(ExternPrintf, args...)
	l.call(ExternFflush, NullConst())
	l.call(ExternAbort)
	l.setTerm(&Terminator{Kind: TermUnreachable})
}
