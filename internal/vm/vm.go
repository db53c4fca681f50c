package vm

import (
	"io"
	"os"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

// AbortExitCode is what a shell reports for a process killed by SIGABRT.
const AbortExitCode = 134

// Options configures VM execution.
type Options struct {
	// Stdout receives printf output; os.Stdout when nil.
	Stdout io.Writer
	// Trace enables execution tracing when non-nil.
	Trace *Tracer
	// OnBlock is called every time control enters a block.
	OnBlock func(fn *mir.Func, bb *mir.Block)
	// MaxSteps bounds the number of executed instructions and terminators;
	// zero means no limit.
	MaxSteps int
}

// Result summarizes a finished run.
type Result struct {
	ExitCode int
	Aborted  bool
	Steps    int
}

// VM is a direct MIR interpreter. Functions run one after another in module
// order, the same way the native entry point calls them.
type VM struct {
	M      *mir.Module
	Halted bool

	opts   Options
	out    io.Writer
	frame  *Frame
	next   int
	result Result
}

// New creates a new VM for executing the given MIR module.
func New(m *mir.Module, opts Options) *VM {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &VM{M: m, opts: opts, out: out}
}

// Run executes the whole module. A VMError means the interpreter hit an
// invalid program; a program abort is reported through Result.
func (vm *VM) Run() (Result, *VMError) {
	for !vm.Halted {
		if vmErr := vm.Step(); vmErr != nil {
			return vm.result, vmErr
		}
	}
	return vm.result, nil
}

// Run interprets m and converts interpreter faults to a plain error.
func Run(m *mir.Module, opts Options) (Result, error) {
	res, vmErr := New(m, opts).Run()
	if vmErr != nil {
		return res, vmErr
	}
	return res, nil
}

// Step executes exactly one instruction or terminator transition.
func (vm *VM) Step() *VMError {
	if vm.Halted {
		return nil
	}
	if vm.frame == nil && !vm.enterNextFunc() {
		vm.Halted = true
		return nil
	}
	if vm.opts.MaxSteps > 0 && vm.result.Steps >= vm.opts.MaxSteps {
		return vm.makeError(PanicStepLimit, "step limit %d exceeded", vm.opts.MaxSteps)
	}
	vm.result.Steps++

	frame := vm.frame
	block := frame.CurrentBlock()
	if block == nil {
		return vm.makeError(PanicUnimplemented, "invalid block id: %d", frame.BB)
	}
	if frame.AtTerminator() {
		vm.opts.Trace.TraceTerm(frame.Func, frame.BB, &block.Term)
		return vm.execTerminator(frame, &block.Term)
	}

	instr := frame.CurrentInstr()
	vm.opts.Trace.TraceInstr(frame.Func, frame.BB, frame.IP, instr)
	if vmErr := vm.execInstr(frame, instr); vmErr != nil {
		return vmErr
	}
	if !vm.Halted {
		frame.IP++
	}
	return nil
}

func (vm *VM) enterNextFunc() bool {
	if vm.M == nil || vm.next >= len(vm.M.Funcs) {
		return false
	}
	fn := vm.M.Funcs[vm.next]
	vm.next++
	vm.frame = NewFrame(fn)
	vm.enterBlock(fn.Entry)
	return true
}

func (vm *VM) enterBlock(id mir.BlockID) {
	vm.frame.BB = id
	vm.frame.IP = 0
	if vm.opts.OnBlock != nil {
		if bb := vm.frame.CurrentBlock(); bb != nil {
			vm.opts.OnBlock(vm.frame.Func, bb)
		}
	}
}

func (vm *VM) abort() {
	vm.Halted = true
	vm.result.Aborted = true
	vm.result.ExitCode = AbortExitCode
}
