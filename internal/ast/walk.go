package ast

import "fmt"

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Module:
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *Function:
		for _, st := range n.Body {
			Inspect(st, f)
		}
	case *PrintStmt:
		Inspect(n.Value, f)
	case *AssertStmt:
		Inspect(n.Cond, f)
	case *DeclareStmt:
		Inspect(n.Value, f)
	case *AssignStmt:
		Inspect(n.Value, f)
	case *IntLit, *BoolLit, *VarRef:
	case *PrefixExpr:
		Inspect(n.X, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *ComparisonExpr:
		Inspect(n.Left, f)
		for _, link := range n.Chain {
			Inspect(link.Right, f)
		}
	default:
		panic(fmt.Sprintf("ast.Inspect: unhandled node %T", n))
	}
}
