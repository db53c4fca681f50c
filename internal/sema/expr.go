package sema

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/ir"
)

func (r *Resolver) resolveExpr(e ast.Expr) (ir.Expr, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return &ir.IntLiteral{Value: e.Value}, nil

	case *ast.BoolLit:
		return &ir.BoolLiteral{Value: e.Value}, nil

	case *ast.VarRef:
		b, ok := r.lookup(e.Name)
		if !ok {
			return nil, typeErrorf(e.Span, "unknown variable %q", e.Name)
		}
		if b.ty == ir.TypeBool {
			return &ir.BoolVar{ID: b.id}, nil
		}
		return &ir.IntVar{ID: b.id}, nil

	case *ast.PrefixExpr:
		return r.resolvePrefix(e)

	case *ast.BinaryExpr:
		return r.resolveBinary(e)

	case *ast.ComparisonExpr:
		return r.resolveComparison(e)

	default:
		return nil, fmt.Errorf("sema: unhandled expression %T", e)
	}
}

func (r *Resolver) resolvePrefix(e *ast.PrefixExpr) (ir.Expr, error) {
	switch e.Op {
	case ast.PrefixNeg:
		x, err := r.resolveInt(e.X, "operand of unary -")
		if err != nil {
			return nil, err
		}
		return &ir.IntNeg{X: x}, nil
	case ast.PrefixNot:
		x, err := r.resolveBool(e.X, "operand of !")
		if err != nil {
			return nil, err
		}
		return &ir.BoolNot{X: x}, nil
	default:
		return nil, fmt.Errorf("sema: unhandled prefix operator %v", e.Op)
	}
}

// resolveBinary: допустимость оператора определяется типом левого операнда.
func (r *Resolver) resolveBinary(e *ast.BinaryExpr) (ir.Expr, error) {
	left, err := r.resolveExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := r.resolveExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch l := left.(type) {
	case ir.IntExpr:
		op, ok := intOps[e.Op]
		if !ok {
			return nil, typeErrorf(e.Span, "operator %s is not defined for Int operands", e.Op)
		}
		rhs, ok := right.(ir.IntExpr)
		if !ok {
			return nil, typeErrorf(e.Right.Location(), "operator %s expects Int on the right, got %s", e.Op, right.Type())
		}
		return &ir.IntBinary{Op: op, Left: l, Right: rhs}, nil

	case ir.BoolExpr:
		op, ok := logicOps[e.Op]
		if !ok {
			return nil, typeErrorf(e.Span, "operator %s is not defined for Boolean operands", e.Op)
		}
		rhs, ok := right.(ir.BoolExpr)
		if !ok {
			return nil, typeErrorf(e.Right.Location(), "operator %s expects Boolean on the right, got %s", e.Op, right.Type())
		}
		// слот под результат; ветвление строит кодогенератор
		result := r.allocate("", ir.TypeBool)
		return &ir.ShortCircuit{Op: op, Left: l, Right: rhs, Result: result}, nil

	default:
		return nil, fmt.Errorf("sema: unhandled operand %T", left)
	}
}

var intOps = map[ast.BinaryOp]ir.IntOp{
	ast.BinaryAdd: ir.IntAdd,
	ast.BinarySub: ir.IntSub,
	ast.BinaryMul: ir.IntMul,
	ast.BinaryDiv: ir.IntDiv,
}

var logicOps = map[ast.BinaryOp]ir.LogicOp{
	ast.BinaryAnd: ir.LogicAnd,
	ast.BinaryOr:  ir.LogicOr,
}

func (r *Resolver) resolveComparison(e *ast.ComparisonExpr) (ir.Expr, error) {
	prev, err := r.resolveInt(e.Left, "comparison operand")
	if err != nil {
		return nil, err
	}
	links := make([]ir.ComparisonLink, 0, len(e.Chain))
	for _, link := range e.Chain {
		right, err := r.resolveInt(link.Right, "comparison operand")
		if err != nil {
			return nil, err
		}
		links = append(links, ir.ComparisonLink{Op: link.Op, Left: prev, Right: right})
		prev = right
	}
	return &ir.ComparisonExpression{Links: links}, nil
}

func (r *Resolver) resolveInt(e ast.Expr, what string) (ir.IntExpr, error) {
	v, err := r.resolveExpr(e)
	if err != nil {
		return nil, err
	}
	i, ok := v.(ir.IntExpr)
	if !ok {
		return nil, typeErrorf(e.Location(), "%s must be Int, got %s", what, v.Type())
	}
	return i, nil
}

func (r *Resolver) resolveBool(e ast.Expr, what string) (ir.BoolExpr, error) {
	v, err := r.resolveExpr(e)
	if err != nil {
		return nil, err
	}
	b, ok := v.(ir.BoolExpr)
	if !ok {
		return nil, typeErrorf(e.Location(), "%s must be Boolean, got %s", what, v.Type())
	}
	return b, nil
}
