package vm

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicUseBeforeInit  PanicCode = 1001 // VM1001: use before initialization
	PanicTypeMismatch   PanicCode = 1003 // VM1003: type mismatch
	PanicUnknownExtern  PanicCode = 1005 // VM1005: call to an undeclared extern
	PanicUnreachable    PanicCode = 1007 // VM1007: unreachable terminator executed
	PanicUndefinedArith PanicCode = 1008 // VM1008: division executed without its guard
	PanicStepLimit      PanicCode = 1009 // VM1009: step budget exhausted
	PanicBadFormat      PanicCode = 1010 // VM1010: printf template not understood
	PanicUnimplemented  PanicCode = 1999 // VM1999: unimplemented opcode/terminator
)

// String returns the code as "VM1001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// VMError represents an interpreter fault. Program aborts (assert, division
// traps) are not VMErrors; they end the run with Result.Aborted set.
type VMError struct {
	Code    PanicCode
	Message string
	Func    string
	Block   mir.BlockID
}

// Error implements the error interface.
func (p *VMError) Error() string {
	if p.Func == "" {
		return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
	}
	return fmt.Sprintf("panic %s: %s (in %s bb%d)", p.Code, p.Message, p.Func, p.Block)
}

func (vm *VM) makeError(code PanicCode, format string, args ...any) *VMError {
	e := &VMError{Code: code, Message: fmt.Sprintf(format, args...), Block: mir.NoBlockID}
	if vm.frame != nil {
		e.Func = vm.frame.Func.Name
		e.Block = vm.frame.BB
	}
	return e
}
