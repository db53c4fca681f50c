package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir/types"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

func llvmType(t mir.Type) (types.Type, error) {
	switch t {
	case mir.TypeVoid:
		return types.Void, nil
	case mir.TypeI32:
		return types.I32, nil
	case mir.TypeBool:
		return types.I1, nil
	case mir.TypeStr, mir.TypePtr:
		return types.I8Ptr, nil
	default:
		return nil, fmt.Errorf("llvm: unsupported type %s", t)
	}
}
