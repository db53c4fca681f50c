package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
)

// declareExterns adds a declaration for every runtime primitive the module
// lists. Nothing else from libc is referenced.
func (e *Emitter) declareExterns() error {
	for _, ext := range e.mod.Externs {
		ret, err := llvmType(ext.Result)
		if err != nil {
			return err
		}
		params := make([]*ir.Param, 0, len(ext.Params))
		for i, p := range ext.Params {
			ty, err := llvmType(p)
			if err != nil {
				return err
			}
			params = append(params, ir.NewParam(fmt.Sprintf("p%d", i), ty))
		}
		fn := e.out.NewFunc(ext.Name, ret, params...)
		fn.Sig.Variadic = ext.Variadic
		if ext.NoReturn {
			fn.FuncAttrs = append(fn.FuncAttrs, enum.FuncAttrNoReturn, enum.FuncAttrNoUnwind)
		}
		e.externs[ext.Name] = fn
	}
	return nil
}
