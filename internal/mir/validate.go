package mir

import (
	"errors"
	"fmt"
)

// Validate checks MIR module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := validateFunc(m, f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) error {
	var errs []error
	if f.Block(f.Entry) == nil {
		errs = append(errs, fmt.Errorf("entry bb%d does not exist", f.Entry))
	}
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateInstrs(m, f); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all block target IDs exist.
func validateBlockTargets(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if bb.ID != BlockID(i) { //nolint:gosec // G115: bounded by block count
			errs = append(errs, fmt.Errorf("bb%d: recorded id bb%d", i, bb.ID))
		}
		for _, target := range bb.Term.Successors() {
			if f.Block(target) == nil {
				errs = append(errs, fmt.Errorf("bb%d: target bb%d does not exist", i, target))
			}
		}
		if bb.Term.Kind == TermIf && bb.Term.If.Cond.Type != TypeBool {
			errs = append(errs, fmt.Errorf("bb%d: branch condition has type %s", i, bb.Term.If.Cond.Type))
		}
	}
	return errors.Join(errs...)
}

func validateInstrs(m *Module, f *Func) error {
	var errs []error

	checkOperand := func(op *Operand, context string) {
		if op.Kind != OperandCopy {
			return
		}
		id := op.Place.Local
		if id < 0 || int(id) >= len(f.Locals) {
			errs = append(errs, fmt.Errorf("%s: local L%d does not exist", context, id))
			return
		}
		if f.Locals[id].Type != op.Type {
			errs = append(errs, fmt.Errorf("%s: L%d read as %s, declared %s", context, id, op.Type, f.Locals[id].Type))
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Instrs {
			ins := &bb.Instrs[j]
			ctx := fmt.Sprintf("bb%d instr %d", i, j)
			forEachOperand(ins, func(op *Operand) { checkOperand(op, ctx) })

			switch ins.Kind {
			case InstrAssign:
				dst := ins.Assign.Dst.Local
				if dst < 0 || int(dst) >= len(f.Locals) {
					errs = append(errs, fmt.Errorf("%s: destination L%d does not exist", ctx, dst))
					continue
				}
				if got, want := ins.Assign.Src.Type(), f.Locals[dst].Type; got != want {
					errs = append(errs, fmt.Errorf("%s: assigns %s to L%d of type %s", ctx, got, dst, want))
				}
			case InstrCall:
				ext, ok := m.Extern(ins.Call.Callee.Name)
				if !ok {
					errs = append(errs, fmt.Errorf("%s: call to undeclared %q", ctx, ins.Call.Callee.Name))
					continue
				}
				if len(ins.Call.Args) < len(ext.Params) || (!ext.Variadic && len(ins.Call.Args) != len(ext.Params)) {
					errs = append(errs, fmt.Errorf("%s: %s takes %d arguments, got %d", ctx, ext.Name, len(ext.Params), len(ins.Call.Args)))
				}
			}
		}
		if bb.Term.Kind == TermIf {
			checkOperand(&bb.Term.If.Cond, fmt.Sprintf("bb%d term", i))
		}
	}
	return errors.Join(errs...)
}
