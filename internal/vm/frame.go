package vm

import "github.com/vivax3794/viv-script-blog/internal/mir"

// LocalSlot holds the runtime state of a local variable.
type LocalSlot struct {
	V      Value    // Current value
	IsInit bool     // True if initialized (assigned at least once)
	Name   string   // Debug name from MIR
	Type   mir.Type // Static type from MIR
}

// Frame represents a function activation record.
type Frame struct {
	Func   *mir.Func   // The function being executed
	BB     mir.BlockID // Current basic block
	IP     int         // Instruction pointer within BB.Instrs
	Locals []LocalSlot // Local variable slots
}

// NewFrame creates a new frame for executing the given function.
func NewFrame(fn *mir.Func) *Frame {
	locals := make([]LocalSlot, len(fn.Locals))
	for i, local := range fn.Locals {
		locals[i] = LocalSlot{Name: local.Name, Type: local.Type}
	}
	return &Frame{Func: fn, BB: fn.Entry, Locals: locals}
}

// CurrentBlock returns the current basic block being executed.
func (f *Frame) CurrentBlock() *mir.Block {
	return f.Func.Block(f.BB)
}

// CurrentInstr returns the current instruction, or nil if at terminator.
func (f *Frame) CurrentInstr() *mir.Instr {
	block := f.CurrentBlock()
	if block == nil || f.IP >= len(block.Instrs) {
		return nil
	}
	return &block.Instrs[f.IP]
}

// AtTerminator reports whether the next step executes the terminator.
func (f *Frame) AtTerminator() bool {
	block := f.CurrentBlock()
	return block != nil && f.IP >= len(block.Instrs)
}
