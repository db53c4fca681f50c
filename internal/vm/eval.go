package vm

import "github.com/vivax3794/viv-script-blog/internal/mir"

const minInt32 int32 = -1 << 31

func (vm *VM) evalRValue(frame *Frame, rv *mir.RValue) (Value, *VMError) {
	switch rv.Kind {
	case mir.RValueUse:
		return vm.evalOperand(frame, &rv.Use)

	case mir.RValueUnaryOp:
		x, vmErr := vm.evalOperand(frame, &rv.Unary.Operand)
		if vmErr != nil {
			return Value{}, vmErr
		}
		switch rv.Unary.Op {
		case mir.UnNeg:
			if x.Kind != VKInt {
				return Value{}, vm.makeError(PanicTypeMismatch, "neg of %s", x)
			}
			return MakeInt(-x.Int), nil
		case mir.UnNot:
			if x.Kind != VKBool {
				return Value{}, vm.makeError(PanicTypeMismatch, "not of %s", x)
			}
			return MakeBool(!x.Bool), nil
		}

	case mir.RValueBinaryOp:
		left, vmErr := vm.evalOperand(frame, &rv.Binary.Left)
		if vmErr != nil {
			return Value{}, vmErr
		}
		right, vmErr := vm.evalOperand(frame, &rv.Binary.Right)
		if vmErr != nil {
			return Value{}, vmErr
		}
		return vm.evalBinary(rv.Binary.Op, left, right)

	case mir.RValueSelect:
		cond, vmErr := vm.evalOperand(frame, &rv.Select.Cond)
		if vmErr != nil {
			return Value{}, vmErr
		}
		if cond.Kind != VKBool {
			return Value{}, vm.makeError(PanicTypeMismatch, "select on %s", cond)
		}
		if cond.Bool {
			return vm.evalOperand(frame, &rv.Select.Then)
		}
		return vm.evalOperand(frame, &rv.Select.Else)
	}
	return Value{}, vm.makeError(PanicUnimplemented, "rvalue kind %d", rv.Kind)
}

func (vm *VM) evalBinary(op mir.BinOp, left, right Value) (Value, *VMError) {
	if op == mir.BinAnd {
		if left.Kind != VKBool || right.Kind != VKBool {
			return Value{}, vm.makeError(PanicTypeMismatch, "and of %s and %s", left, right)
		}
		return MakeBool(left.Bool && right.Bool), nil
	}
	if left.Kind != VKInt || right.Kind != VKInt {
		return Value{}, vm.makeError(PanicTypeMismatch, "%s of %s and %s", op, left, right)
	}
	x, y := left.Int, right.Int
	switch op {
	case mir.BinAdd:
		return MakeInt(x + y), nil
	case mir.BinSub:
		return MakeInt(x - y), nil
	case mir.BinMul:
		return MakeInt(x * y), nil
	case mir.BinDiv:
		if y == 0 || (y == -1 && x == minInt32) {
			return Value{}, vm.makeError(PanicUndefinedArith, "unguarded division %d / %d", x, y)
		}
		return MakeInt(x / y), nil
	case mir.BinEq:
		return MakeBool(x == y), nil
	case mir.BinNe:
		return MakeBool(x != y), nil
	case mir.BinLt:
		return MakeBool(x < y), nil
	case mir.BinLe:
		return MakeBool(x <= y), nil
	case mir.BinGt:
		return MakeBool(x > y), nil
	case mir.BinGe:
		return MakeBool(x >= y), nil
	}
	return Value{}, vm.makeError(PanicUnimplemented, "binary op %s", op)
}
