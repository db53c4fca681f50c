package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a human-readable listing of the module.
func Dump(w io.Writer, m *Module) error {
	var b strings.Builder
	for i, f := range m.Functions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "fn %s:\n", f.Name)
		if len(f.Locals) > 0 {
			b.WriteString("  locals:\n")
			for _, l := range f.Locals {
				name := l.Name
				if l.Synthetic() {
					name = "<temp>"
				}
				fmt.Fprintf(&b, "    %s %s: %s\n", l.ID, name, l.Type)
			}
		}
		for _, st := range f.Body {
			b.WriteString("  ")
			b.WriteString(FormatStmt(st))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatStmt renders one statement on a single line.
func FormatStmt(st Stmt) string {
	switch st := st.(type) {
	case *Print:
		return fmt.Sprintf("print.%s %s", strings.ToLower(st.Value.Type().String()), FormatExpr(st.Value))
	case *Assert:
		if st.HasMessage {
			return fmt.Sprintf("assert %s, %s", FormatExpr(st.Cond), strconv.Quote(st.Message))
		}
		return "assert " + FormatExpr(st.Cond)
	case *Assign:
		return fmt.Sprintf("%s = %s", st.Target, FormatExpr(st.Value))
	default:
		panic(fmt.Sprintf("ir: unhandled statement %T", st))
	}
}

// FormatExpr renders an expression with explicit parentheses.
func FormatExpr(e Expr) string {
	switch e := e.(type) {
	case *IntLiteral:
		return strconv.FormatInt(int64(e.Value), 10)
	case *IntVar:
		return e.ID.String()
	case *IntNeg:
		return "-" + FormatExpr(e.X)
	case *IntBinary:
		return fmt.Sprintf("(%s %s %s)", FormatExpr(e.Left), e.Op, FormatExpr(e.Right))
	case *BoolLiteral:
		return strconv.FormatBool(e.Value)
	case *BoolVar:
		return e.ID.String()
	case *BoolNot:
		return "!" + FormatExpr(e.X)
	case *ComparisonExpression:
		var b strings.Builder
		b.WriteByte('(')
		for i, l := range e.Links {
			if i == 0 {
				b.WriteString(FormatExpr(l.Left))
			}
			fmt.Fprintf(&b, " %s %s", l.Op, FormatExpr(l.Right))
		}
		b.WriteByte(')')
		return b.String()
	case *ShortCircuit:
		return fmt.Sprintf("(%s %s %s -> %s)", FormatExpr(e.Left), e.Op, FormatExpr(e.Right), e.Result)
	default:
		panic(fmt.Sprintf("ir: unhandled expression %T", e))
	}
}
