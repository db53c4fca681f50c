package vm

import (
	"github.com/vivax3794/viv-script-blog/internal/mir"
)

func (vm *VM) execTerminator(frame *Frame, term *mir.Terminator) *VMError {
	switch term.Kind {
	case mir.TermReturn:
		vm.frame = nil
	case mir.TermGoto:
		vm.enterBlock(term.Goto.Target)
	case mir.TermIf:
		cond, vmErr := vm.evalOperand(frame, &term.If.Cond)
		if vmErr != nil {
			return vmErr
		}
		if cond.Kind != VKBool {
			return vm.makeError(PanicTypeMismatch, "branch condition is %s", cond)
		}
		if cond.Bool {
			vm.enterBlock(term.If.Then)
		} else {
			vm.enterBlock(term.If.Else)
		}
	case mir.TermUnreachable:
		return vm.makeError(PanicUnreachable, "unreachable code executed")
	default:
		return vm.makeError(PanicUnimplemented, "terminator kind %d", term.Kind)
	}
	return nil
}

func (vm *VM) execInstr(frame *Frame, instr *mir.Instr) *VMError {
	switch instr.Kind {
	case mir.InstrAssign:
		val, vmErr := vm.evalRValue(frame, &instr.Assign.Src)
		if vmErr != nil {
			return vmErr
		}
		return vm.writeLocal(frame, instr.Assign.Dst.Local, val)
	case mir.InstrCall:
		return vm.execCall(frame, &instr.Call)
	case mir.InstrNop:
		return nil
	default:
		return vm.makeError(PanicUnimplemented, "instruction kind %d", instr.Kind)
	}
}

func (vm *VM) writeLocal(frame *Frame, id mir.LocalID, val Value) *VMError {
	if id < 0 || int(id) >= len(frame.Locals) {
		return vm.makeError(PanicUnimplemented, "local L%d does not exist", id)
	}
	slot := &frame.Locals[id]
	if want := kindFor(slot.Type); want != val.Kind {
		return vm.makeError(PanicTypeMismatch, "store of %s into %s local %s", val, slot.Type, slot.Name)
	}
	slot.V = val
	slot.IsInit = true
	vm.opts.Trace.TraceWrite(id, slot)
	return nil
}

func (vm *VM) evalOperand(frame *Frame, op *mir.Operand) (Value, *VMError) {
	switch op.Kind {
	case mir.OperandConst:
		v, err := constValue(&op.Const)
		if err != nil {
			return Value{}, vm.makeError(PanicUnimplemented, "%v", err)
		}
		return v, nil
	case mir.OperandCopy:
		id := op.Place.Local
		if id < 0 || int(id) >= len(frame.Locals) {
			return Value{}, vm.makeError(PanicUnimplemented, "local L%d does not exist", id)
		}
		slot := &frame.Locals[id]
		if !slot.IsInit {
			return Value{}, vm.makeError(PanicUseBeforeInit, "local %q used before initialization", slot.Name)
		}
		return slot.V, nil
	default:
		return Value{}, vm.makeError(PanicUnimplemented, "operand kind %d", op.Kind)
	}
}

func (vm *VM) execCall(frame *Frame, call *mir.CallInstr) *VMError {
	if _, ok := vm.M.Extern(call.Callee.Name); !ok {
		return vm.makeError(PanicUnknownExtern, "call to undeclared %q", call.Callee.Name)
	}
	args := make([]Value, len(call.Args))
	for i := range call.Args {
		v, vmErr := vm.evalOperand(frame, &call.Args[i])
		if vmErr != nil {
			return vmErr
		}
		args[i] = v
	}

	switch call.Callee.Name {
	case mir.ExternPrintf:
		return vm.printf(args)
	case mir.ExternFflush:
		if f, ok := vm.out.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
		return nil
	case mir.ExternAbort:
		vm.abort()
		return nil
	default:
		return vm.makeError(PanicUnknownExtern, "no runtime implementation for %q", call.Callee.Name)
	}
}
