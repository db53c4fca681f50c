// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// 1) every span points into sf and stays within its content
// 2) every node except an empty module has a non-empty span
// 3) children lie inside their parent
// 4) functions and the statements of each function are in source order
//    and do not overlap
func CheckSpanInvariants(mod *ast.Module, sf *source.File) error {
	if mod == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	size := uint32(len(sf.Content))
	if err := checkSpan("module", mod.Span, sf.ID, size, len(mod.Functions) > 0); err != nil {
		return err
	}

	var prevFn source.Span
	for i, fn := range mod.Functions {
		if err := checkSpan(fn.Name, fn.Span, sf.ID, size, true); err != nil {
			return err
		}
		if !contains(mod.Span, fn.Span) {
			return fmt.Errorf("%s span %v outside module span %v", fn.Name, fn.Span, mod.Span)
		}
		if i > 0 && fn.Span.Start < prevFn.End {
			return fmt.Errorf("%s span %v overlaps previous function %v", fn.Name, fn.Span, prevFn)
		}
		prevFn = fn.Span

		var prevSt source.Span
		for j, st := range fn.Body {
			span := st.Location()
			if j > 0 && span.Start < prevSt.End {
				return fmt.Errorf("%s statement %d span %v overlaps previous %v", fn.Name, j, span, prevSt)
			}
			prevSt = span
			if err := checkTree(st, fn.Span, sf.ID, size); err != nil {
				return fmt.Errorf("%s statement %d: %w", fn.Name, j, err)
			}
		}
	}
	return nil
}

func checkTree(n ast.Node, parent source.Span, file source.FileID, size uint32) error {
	span := n.Location()
	name := fmt.Sprintf("%T", n)
	if err := checkSpan(name, span, file, size, true); err != nil {
		return err
	}
	if !contains(parent, span) {
		return fmt.Errorf("%s span %v escapes its parent %v", name, span, parent)
	}
	for _, child := range children(n) {
		if err := checkTree(child, span, file, size); err != nil {
			return err
		}
	}
	return nil
}

// children lists the direct children of n; ast.Inspect only offers a
// pre-order walk, which loses the parent.
func children(n ast.Node) []ast.Node {
	var out []ast.Node
	first := true
	ast.Inspect(n, func(c ast.Node) bool {
		if first {
			first = false
			return true
		}
		out = append(out, c)
		return false
	})
	return out
}

func checkSpan(name string, span source.Span, file source.FileID, size uint32, nonEmpty bool) error {
	if span.File != file {
		return fmt.Errorf("%s span points to different file id: got=%d want=%d", name, span.File, file)
	}
	if span.End < span.Start || span.End > size {
		return fmt.Errorf("%s span %v out of bounds (size=%d)", name, span, size)
	}
	if nonEmpty && span.End == span.Start {
		return fmt.Errorf("%s span is empty: %v", name, span)
	}
	return nil
}

func contains(outer, inner source.Span) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}
