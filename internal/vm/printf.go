package vm

import (
	"io"
	"strconv"
	"strings"
)

// printf implements the subset of C printf that generated code uses:
// %d for i32, %s for strings and %%.
func (vm *VM) printf(args []Value) *VMError {
	if len(args) == 0 || args[0].Kind != VKStr {
		return vm.makeError(PanicBadFormat, "printf without a template")
	}
	tmpl, rest := args[0].Str, args[1:]

	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(tmpl) {
			return vm.makeError(PanicBadFormat, "dangling %% in %q", tmpl)
		}
		verb := tmpl[i]
		if verb == '%' {
			sb.WriteByte('%')
			continue
		}
		if len(rest) == 0 {
			return vm.makeError(PanicBadFormat, "missing argument for %%%c in %q", verb, tmpl)
		}
		arg := rest[0]
		rest = rest[1:]
		switch {
		case verb == 'd' && arg.Kind == VKInt:
			sb.WriteString(strconv.FormatInt(int64(arg.Int), 10))
		case verb == 's' && arg.Kind == VKStr:
			sb.WriteString(arg.Str)
		default:
			return vm.makeError(PanicBadFormat, "verb %%%c does not accept %s", verb, arg)
		}
	}
	if len(rest) != 0 {
		return vm.makeError(PanicBadFormat, "%d extra arguments for %q", len(rest), tmpl)
	}
	_, _ = io.WriteString(vm.out, sb.String())
	return nil
}
