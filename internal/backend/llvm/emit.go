package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

// FuncPrefix namespaces user functions so they cannot collide with libc.
const FuncPrefix = "viv."

type Emitter struct {
	mod *mir.Module
	out *ir.Module

	externs      map[string]*ir.Func
	funcs        []*ir.Func
	stringConsts map[string]*ir.Global
}

type funcEmitter struct {
	emitter *Emitter
	f       *mir.Func
	fn      *ir.Func

	blocks      []*ir.Block
	localAlloca []*ir.InstAlloca
	cur         *ir.Block
}

// Options configures textual IR emission.
type Options struct {
	// SourceFilename is recorded in the module header when non-empty.
	SourceFilename string
}

// EmitModule renders mod as textual LLVM IR. Every MIR function becomes an
// i32-returning function; a synthesized main calls them in module order and
// returns 0.
func EmitModule(mod *mir.Module, opts Options) (string, error) {
	out, err := BuildModule(mod, opts)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// BuildModule is EmitModule without the final rendering step.
func BuildModule(mod *mir.Module, opts Options) (*ir.Module, error) {
	if mod == nil {
		return nil, fmt.Errorf("llvm: nil module")
	}
	e := &Emitter{
		mod:          mod,
		out:          ir.NewModule(),
		externs:      make(map[string]*ir.Func, len(mod.Externs)),
		stringConsts: make(map[string]*ir.Global),
	}
	e.out.SourceFilename = opts.SourceFilename
	if err := e.declareExterns(); err != nil {
		return nil, err
	}
	for _, f := range mod.Funcs {
		fn, err := e.emitFunc(f)
		if err != nil {
			return nil, fmt.Errorf("llvm: %s: %w", f.Name, err)
		}
		e.funcs = append(e.funcs, fn)
	}
	e.emitMain()
	return e.out, nil
}

func (e *Emitter) emitMain() {
	main := e.out.NewFunc("main", types.I32)
	entry := main.NewBlock("entry")
	for _, fn := range e.funcs {
		entry.NewCall(fn)
	}
	entry.NewRet(constant.NewInt(types.I32, 0))
}

// stringPtr returns an i8* to a private NUL-terminated copy of s. Equal
// strings share one global.
func (e *Emitter) stringPtr(s string) constant.Constant {
	g, ok := e.stringConsts[s]
	if !ok {
		g = e.out.NewGlobalDef(fmt.Sprintf(".str.%d", len(e.stringConsts)), constant.NewCharArrayFromString(s+"\x00"))
		g.Immutable = true
		g.Linkage = enum.LinkagePrivate
		g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
		e.stringConsts[s] = g
	}
	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}
