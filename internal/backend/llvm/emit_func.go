package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

func (e *Emitter) emitFunc(f *mir.Func) (*ir.Func, error) {
	fe := &funcEmitter{
		emitter: e,
		f:       f,
		fn:      e.out.NewFunc(FuncPrefix+f.Name, types.I32),
	}

	// все слоты живут в отдельном блоке входа
	allocas := fe.fn.NewBlock("entry")
	fe.localAlloca = make([]*ir.InstAlloca, len(f.Locals))
	for i, l := range f.Locals {
		ty, err := llvmType(l.Type)
		if err != nil {
			return nil, fmt.Errorf("local L%d: %w", i, err)
		}
		slot := allocas.NewAlloca(ty)
		slot.SetName(fmt.Sprintf("%s.%d", l.Name, i))
		fe.localAlloca[i] = slot
	}

	fe.blocks = make([]*ir.Block, len(f.Blocks))
	for i := range f.Blocks {
		name := fmt.Sprintf("bb%d", f.Blocks[i].ID)
		if label := f.Blocks[i].Label; label != "" {
			name += "." + label
		}
		fe.blocks[i] = fe.fn.NewBlock(name)
	}
	target := f.Block(f.Entry)
	if target == nil {
		return nil, fmt.Errorf("entry bb%d does not exist", f.Entry)
	}
	allocas.NewBr(fe.blocks[f.Entry])

	for i := range f.Blocks {
		fe.cur = fe.blocks[i]
		bb := &f.Blocks[i]
		for j := range bb.Instrs {
			if err := fe.emitInstr(&bb.Instrs[j]); err != nil {
				return nil, fmt.Errorf("bb%d instr %d: %w", i, j, err)
			}
		}
		if err := fe.emitTerminator(&bb.Term); err != nil {
			return nil, fmt.Errorf("bb%d: %w", i, err)
		}
	}
	return fe.fn, nil
}

func (fe *funcEmitter) block(id mir.BlockID) (*ir.Block, error) {
	if id < 0 || int(id) >= len(fe.blocks) {
		return nil, fmt.Errorf("block bb%d does not exist", id)
	}
	return fe.blocks[id], nil
}

func (fe *funcEmitter) emitTerminator(term *mir.Terminator) error {
	switch term.Kind {
	case mir.TermReturn:
		fe.cur.NewRet(constant.NewInt(types.I32, 0))
	case mir.TermGoto:
		target, err := fe.block(term.Goto.Target)
		if err != nil {
			return err
		}
		fe.cur.NewBr(target)
	case mir.TermIf:
		cond, err := fe.emitOperand(&term.If.Cond)
		if err != nil {
			return err
		}
		then, err := fe.block(term.If.Then)
		if err != nil {
			return err
		}
		els, err := fe.block(term.If.Else)
		if err != nil {
			return err
		}
		fe.cur.NewCondBr(cond, then, els)
	case mir.TermUnreachable, mir.TermNone:
		fe.cur.NewUnreachable()
	default:
		return fmt.Errorf("unsupported terminator kind %d", term.Kind)
	}
	return nil
}
