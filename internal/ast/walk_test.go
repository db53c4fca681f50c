package ast_test

import (
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/ast"
)

func sampleModule() *ast.Module {
	return &ast.Module{Functions: []*ast.Function{{
		Name: "fn0",
		Body: []ast.Stmt{
			&ast.DeclareStmt{Name: "x", Value: &ast.IntLit{Value: 1}},
			&ast.AssignStmt{Name: "x", Value: &ast.PrefixExpr{Op: ast.PrefixNeg, X: &ast.VarRef{Name: "x"}}},
			&ast.AssertStmt{
				Cond: &ast.BinaryExpr{
					Left: &ast.BoolLit{Value: true},
					Op:   ast.BinaryAnd,
					Right: &ast.ComparisonExpr{
						Left:  &ast.VarRef{Name: "x"},
						Chain: []ast.ComparisonLink{{Op: ast.CompareLt, Right: &ast.IntLit{Value: 3}}},
					},
				},
				HasMessage: true,
				Message:    "boom",
			},
			&ast.PrintStmt{Value: &ast.VarRef{Name: "x"}},
		},
	}}}
}

func TestInspectVisitsEveryVariant(t *testing.T) {
	seen := map[string]int{}
	ast.Inspect(sampleModule(), func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Module:
			seen["module"]++
		case *ast.Function:
			seen["function"]++
		case *ast.PrintStmt, *ast.AssertStmt, *ast.DeclareStmt, *ast.AssignStmt:
			seen["stmt"]++
		case *ast.IntLit, *ast.BoolLit:
			seen["lit"]++
		case *ast.VarRef:
			seen["var"]++
		case *ast.PrefixExpr, *ast.BinaryExpr, *ast.ComparisonExpr:
			seen["op"]++
		default:
			t.Fatalf("unexpected node %T", n)
		}
		return true
	})
	want := map[string]int{"module": 1, "function": 1, "stmt": 4, "lit": 3, "var": 3, "op": 3}
	for k, v := range want {
		if seen[k] != v {
			t.Errorf("%s visited %d times, want %d", k, seen[k], v)
		}
	}
}

func TestInspectPrune(t *testing.T) {
	count := 0
	ast.Inspect(sampleModule(), func(n ast.Node) bool {
		count++
		_, isFn := n.(*ast.Function)
		return !isFn
	})
	if count != 2 {
		t.Fatalf("visited %d nodes, want module and function only", count)
	}
}

func TestCompareOpEval(t *testing.T) {
	cases := []struct {
		op   ast.CompareOp
		a, b int32
		want bool
	}{
		{ast.CompareEq, 2, 2, true},
		{ast.CompareNe, 2, 2, false},
		{ast.CompareLt, -1, 0, true},
		{ast.CompareLe, 3, 3, true},
		{ast.CompareGt, 3, 4, false},
		{ast.CompareGe, 4, 3, true},
	}
	for _, c := range cases {
		if got := c.op.Eval(c.a, c.b); got != c.want {
			t.Errorf("%d %s %d = %v, want %v", c.a, c.op, c.b, got, c.want)
		}
	}
}
