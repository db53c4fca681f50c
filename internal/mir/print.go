package mir

import (
	"fmt"
	"io"
	"strings"
)

// DumpOptions configures MIR module dumping.
type DumpOptions struct {
	// Labels prints block labels next to block ids.
	Labels bool
}

// DumpModule writes a human-readable representation of a MIR module.
func DumpModule(w io.Writer, m *Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	var sb strings.Builder
	for _, e := range m.Externs {
		params := make([]string, 0, len(e.Params)+1)
		for _, p := range e.Params {
			params = append(params, p.String())
		}
		if e.Variadic {
			params = append(params, "...")
		}
		attrs := ""
		if e.NoReturn {
			attrs = " noreturn"
		}
		fmt.Fprintf(&sb, "extern %s(%s) -> %s%s\n", e.Name, strings.Join(params, ", "), e.Result, attrs)
	}

	fmt.Fprintf(&sb, "funcs=%d\n", len(m.Funcs))
	for _, f := range m.Funcs {
		dumpFunc(&sb, f, opts)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpFunc(sb *strings.Builder, f *Func, opts DumpOptions) {
	if f == nil {
		return
	}
	fmt.Fprintf(sb, "\nfn %s:\n", f.Name)

	fmt.Fprintf(sb, "  locals:\n")
	for i, l := range f.Locals {
		flags := formatLocalFlags(l.Flags)
		if flags != "" {
			fmt.Fprintf(sb, "    L%d: %s %s name=%s\n", i, l.Type, flags, l.Name)
		} else {
			fmt.Fprintf(sb, "    L%d: %s name=%s\n", i, l.Type, l.Name)
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if opts.Labels && bb.Label != "" {
			fmt.Fprintf(sb, "  bb%d (%s):\n", bb.ID, bb.Label)
		} else {
			fmt.Fprintf(sb, "  bb%d:\n", bb.ID)
		}
		for j := range bb.Instrs {
			fmt.Fprintf(sb, "    %s\n", FormatInstr(&bb.Instrs[j]))
		}
		fmt.Fprintf(sb, "    %s\n", FormatTerm(&bb.Term))
	}
}

func formatLocalFlags(f LocalFlags) string {
	var parts []string
	if f&LocalFlagUser != 0 {
		parts = append(parts, "user")
	}
	if f&LocalFlagTemp != 0 {
		parts = append(parts, "temp")
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// FormatInstr renders one instruction the way DumpModule does.
func FormatInstr(ins *Instr) string {
	if ins == nil {
		return "<instr?>"
	}
	switch ins.Kind {
	case InstrAssign:
		return fmt.Sprintf("%s = %s", formatPlace(ins.Assign.Dst), formatRValue(&ins.Assign.Src))
	case InstrCall:
		return fmt.Sprintf("call %s(%s)", ins.Call.Callee.Name, formatOperands(ins.Call.Args))
	case InstrNop:
		return "nop"
	default:
		return "<instr?>"
	}
}

// FormatTerm renders a terminator the way DumpModule does.
func FormatTerm(term *Terminator) string {
	switch term.Kind {
	case TermReturn:
		return "return"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", term.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %s then bb%d else bb%d", formatOperand(&term.If.Cond), term.If.Then, term.If.Else)
	case TermNone, TermUnreachable:
		return "unreachable"
	default:
		return "<term?>"
	}
}

func formatPlace(p Place) string {
	if !p.IsValid() {
		return "L?"
	}
	return fmt.Sprintf("L%d", p.Local)
}

func formatOperands(ops []Operand) string {
	parts := make([]string, len(ops))
	for i := range ops {
		parts[i] = formatOperand(&ops[i])
	}
	return strings.Join(parts, ", ")
}

func formatOperand(op *Operand) string {
	switch op.Kind {
	case OperandConst:
		return formatConst(&op.Const)
	case OperandCopy:
		return fmt.Sprintf("copy %s", formatPlace(op.Place))
	default:
		return "<op?>"
	}
}

func formatConst(c *Const) string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("const %d", c.IntValue)
	case ConstBool:
		if c.BoolValue {
			return "const true"
		}
		return "const false"
	case ConstString:
		return fmt.Sprintf("const %q", c.StringValue)
	case ConstNull:
		return "const null"
	default:
		return "const ?"
	}
}

func formatRValue(rv *RValue) string {
	switch rv.Kind {
	case RValueUse:
		return formatOperand(&rv.Use)
	case RValueUnaryOp:
		return fmt.Sprintf("(%s %s)", rv.Unary.Op, formatOperand(&rv.Unary.Operand))
	case RValueBinaryOp:
		return fmt.Sprintf("(%s %s %s)", formatOperand(&rv.Binary.Left), rv.Binary.Op, formatOperand(&rv.Binary.Right))
	case RValueSelect:
		return fmt.Sprintf("select %s ? %s : %s",
			formatOperand(&rv.Select.Cond),
			formatOperand(&rv.Select.Then),
			formatOperand(&rv.Select.Else),
		)
	default:
		return "<rvalue?>"
	}
}
