package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

func (fe *funcEmitter) emitInstr(ins *mir.Instr) error {
	switch ins.Kind {
	case mir.InstrAssign:
		val, err := fe.emitRValue(&ins.Assign.Src)
		if err != nil {
			return err
		}
		slot, err := fe.slot(ins.Assign.Dst.Local)
		if err != nil {
			return err
		}
		fe.cur.NewStore(val, slot)
		return nil
	case mir.InstrCall:
		callee, ok := fe.emitter.externs[ins.Call.Callee.Name]
		if !ok {
			return fmt.Errorf("call to undeclared %q", ins.Call.Callee.Name)
		}
		args := make([]value.Value, 0, len(ins.Call.Args))
		for i := range ins.Call.Args {
			v, err := fe.emitOperand(&ins.Call.Args[i])
			if err != nil {
				return err
			}
			args = append(args, v)
		}
		fe.cur.NewCall(callee, args...)
		return nil
	case mir.InstrNop:
		return nil
	default:
		return fmt.Errorf("unsupported instruction kind %d", ins.Kind)
	}
}

func (fe *funcEmitter) slot(id mir.LocalID) (value.Value, error) {
	if id < 0 || int(id) >= len(fe.localAlloca) {
		return nil, fmt.Errorf("local L%d does not exist", id)
	}
	return fe.localAlloca[id], nil
}

func (fe *funcEmitter) emitOperand(op *mir.Operand) (value.Value, error) {
	switch op.Kind {
	case mir.OperandConst:
		return fe.emitConst(&op.Const)
	case mir.OperandCopy:
		slot, err := fe.slot(op.Place.Local)
		if err != nil {
			return nil, err
		}
		ty, err := llvmType(fe.f.Locals[op.Place.Local].Type)
		if err != nil {
			return nil, err
		}
		return fe.cur.NewLoad(ty, slot), nil
	default:
		return nil, fmt.Errorf("unsupported operand kind %d", op.Kind)
	}
}

func (fe *funcEmitter) emitConst(c *mir.Const) (value.Value, error) {
	switch c.Kind {
	case mir.ConstInt:
		return constant.NewInt(types.I32, int64(c.IntValue)), nil
	case mir.ConstBool:
		return constant.NewBool(c.BoolValue), nil
	case mir.ConstString:
		return fe.emitter.stringPtr(c.StringValue), nil
	case mir.ConstNull:
		return constant.NewNull(types.I8Ptr), nil
	default:
		return nil, fmt.Errorf("unsupported const kind %d", c.Kind)
	}
}

var comparePreds = map[mir.BinOp]enum.IPred{
	mir.BinEq: enum.IPredEQ,
	mir.BinNe: enum.IPredNE,
	mir.BinLt: enum.IPredSLT,
	mir.BinLe: enum.IPredSLE,
	mir.BinGt: enum.IPredSGT,
	mir.BinGe: enum.IPredSGE,
}

func (fe *funcEmitter) emitRValue(rv *mir.RValue) (value.Value, error) {
	switch rv.Kind {
	case mir.RValueUse:
		return fe.emitOperand(&rv.Use)

	case mir.RValueUnaryOp:
		x, err := fe.emitOperand(&rv.Unary.Operand)
		if err != nil {
			return nil, err
		}
		switch rv.Unary.Op {
		case mir.UnNeg:
			return fe.cur.NewSub(constant.NewInt(types.I32, 0), x), nil
		case mir.UnNot:
			return fe.cur.NewXor(x, constant.True), nil
		}
		return nil, fmt.Errorf("unsupported unary op %s", rv.Unary.Op)

	case mir.RValueBinaryOp:
		left, err := fe.emitOperand(&rv.Binary.Left)
		if err != nil {
			return nil, err
		}
		right, err := fe.emitOperand(&rv.Binary.Right)
		if err != nil {
			return nil, err
		}
		if pred, ok := comparePreds[rv.Binary.Op]; ok {
			return fe.cur.NewICmp(pred, left, right), nil
		}
		// без nsw: переполнение заворачивается
		switch rv.Binary.Op {
		case mir.BinAdd:
			return fe.cur.NewAdd(left, right), nil
		case mir.BinSub:
			return fe.cur.NewSub(left, right), nil
		case mir.BinMul:
			return fe.cur.NewMul(left, right), nil
		case mir.BinDiv:
			return fe.cur.NewSDiv(left, right), nil
		case mir.BinAnd:
			return fe.cur.NewAnd(left, right), nil
		}
		return nil, fmt.Errorf("unsupported binary op %s", rv.Binary.Op)

	case mir.RValueSelect:
		cond, err := fe.emitOperand(&rv.Select.Cond)
		if err != nil {
			return nil, err
		}
		then, err := fe.emitOperand(&rv.Select.Then)
		if err != nil {
			return nil, err
		}
		els, err := fe.emitOperand(&rv.Select.Else)
		if err != nil {
			return nil, err
		}
		return fe.cur.NewSelect(cond, then, els), nil
	}
	return nil, fmt.Errorf("unsupported rvalue kind %d", rv.Kind)
}
