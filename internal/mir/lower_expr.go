package mir

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/ir"
)

func (l *funcLowerer) lowerExpr(e ir.Expr) (Operand, error) {
	switch e := e.(type) {
	case *ir.IntLiteral:
		return IntConst(e.Value), nil
	case *ir.BoolLiteral:
		return BoolConst(e.Value), nil
	case *ir.IntVar:
		local, err := l.varLocal(e.ID)
		if err != nil {
			return Operand{}, err
		}
		return Copy(local, TypeI32), nil
	case *ir.BoolVar:
		local, err := l.varLocal(e.ID)
		if err != nil {
			return Operand{}, err
		}
		return Copy(local, TypeBool), nil
	case *ir.IntNeg:
		x, err := l.lowerExpr(e.X)
		if err != nil {
			return Operand{}, err
		}
		return l.compute(RValue{Kind: RValueUnaryOp, Unary: UnaryOp{Op: UnNeg, Operand: x}}), nil
	case *ir.BoolNot:
		x, err := l.lowerExpr(e.X)
		if err != nil {
			return Operand{}, err
		}
		return l.compute(RValue{Kind: RValueUnaryOp, Unary: UnaryOp{Op: UnNot, Operand: x}}), nil
	case *ir.IntBinary:
		return l.lowerIntBinary(e)
	case *ir.ComparisonExpression:
		return l.lowerComparison(e)
	case *ir.ShortCircuit:
		return l.lowerShortCircuit(e)
	default:
		return Operand{}, fmt.Errorf("unhandled expression %T", e)
	}
}

var intBinOps = map[ir.IntOp]BinOp{
	ir.IntAdd: BinAdd,
	ir.IntSub: BinSub,
	ir.IntMul: BinMul,
	ir.IntDiv: BinDiv,
}

func (l *funcLowerer) lowerIntBinary(e *ir.IntBinary) (Operand, error) {
	left, err := l.lowerExpr(e.Left)
	if err != nil {
		return Operand{}, err
	}
	right, err := l.lowerExpr(e.Right)
	if err != nil {
		return Operand{}, err
	}
	op, ok := intBinOps[e.Op]
	if !ok {
		return Operand{}, fmt.Errorf("unhandled integer operator %v", e.Op)
	}
	if op == BinDiv {
		l.guardDivision(left, right)
	}
	return l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: op, Left: left, Right: right}}), nil
}

// guardDivision branches to a trap when the divisor is zero or the quotient
// overflows. Control continues in a fresh block where division is defined.
func (l *funcLowerer) guardDivision(left, right Operand) {
	isZero := l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: BinEq, Left: right, Right: IntConst(0)}})
	checkBB := l.newBlock(LabelDivCheck)
	l.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: isZero, Then: l.divZeroTrap(), Else: checkBB}})

	l.startBlock(checkBB)
	isMinusOne := l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: BinEq, Left: right, Right: IntConst(-1)}})
	isMin := l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: BinEq, Left: left, Right: IntConst(minInt32)}})
	overflows := l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: BinAnd, Left: isMinusOne, Right: isMin}})
	okBB := l.newBlock(LabelDivOK)
	l.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: overflows, Then: l.divOverflowTrap(), Else: okBB}})

	l.startBlock(okBB)
}

func (l *funcLowerer) divZeroTrap() BlockID {
	if l.divZeroBB == NoBlockID {
		l.divZeroBB = l.trapBlock(LabelDivZero, FormatDivZero)
	}
	return l.divZeroBB
}

func (l *funcLowerer) divOverflowTrap() BlockID {
	if l.divOvfBB == NoBlockID {
		l.divOvfBB = l.trapBlock(LabelDivOvf, FormatDivOverflow)
	}
	return l.divOvfBB
}

func (l *funcLowerer) trapBlock(label, msg string) BlockID {
	saved := l.cur
	id := l.newBlock(label)
	l.startBlock(id)
	l.abortWith(StringConst(msg))
	l.startBlock(saved)
	return id
}

var compareOps = map[ast.CompareOp]BinOp{
	ast.CompareEq: BinEq,
	ast.CompareNe: BinNe,
	ast.CompareLt: BinLt,
	ast.CompareLe: BinLe,
	ast.CompareGt: BinGt,
	ast.CompareGe: BinGe,
}

// lowerComparison evaluates every operand exactly once, left to right, and
// folds all link results with a non-short-circuit and.
func (l *funcLowerer) lowerComparison(e *ir.ComparisonExpression) (Operand, error) {
	if len(e.Links) == 0 {
		return BoolConst(true), nil
	}
	prev, err := l.lowerExpr(e.Links[0].Left)
	if err != nil {
		return Operand{}, err
	}
	var acc Operand
	for i, link := range e.Links {
		right, err := l.lowerExpr(link.Right)
		if err != nil {
			return Operand{}, err
		}
		op, ok := compareOps[link.Op]
		if !ok {
			return Operand{}, fmt.Errorf("unhandled comparison %v", link.Op)
		}
		res := l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: op, Left: prev, Right: right}})
		if i == 0 {
			acc = res
		} else {
			acc = l.compute(RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: BinAnd, Left: acc, Right: res}})
		}
		prev = right
	}
	return acc, nil
}

// lowerShortCircuit:
//
//	cur:      if left then rhs else short   (&&; swapped for ||)
//	sc.rhs:   result = right; goto sc.end
//	sc.short: result = absorbing; goto sc.end
//	sc.end:   copy result
func (l *funcLowerer) lowerShortCircuit(e *ir.ShortCircuit) (Operand, error) {
	result, err := l.varLocal(e.Result)
	if err != nil {
		return Operand{}, err
	}
	left, err := l.lowerExpr(e.Left)
	if err != nil {
		return Operand{}, err
	}

	rhsBB := l.newBlock(LabelShortRHS)
	shortBB := l.newBlock(LabelShortConst)
	endBB := l.newBlock(LabelShortEnd)

	branch := IfTerm{Cond: left, Then: rhsBB, Else: shortBB}
	if e.Op == ir.LogicOr {
		branch.Then, branch.Else = shortBB, rhsBB
	}
	l.setTerm(&Terminator{Kind: TermIf, If: branch})

	l.startBlock(rhsBB)
	right, err := l.lowerExpr(e.Right)
	if err != nil {
		return Operand{}, err
	}
	l.assign(result, RValue{Kind: RValueUse, Use: right})
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: endBB}})

	l.startBlock(shortBB)
	l.assign(result, RValue{Kind: RValueUse, Use: BoolConst(e.Op.Absorbing())})
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: endBB}})

	l.startBlock(endBB)
	// результат снимается в temp сразу в sc.end
	return l.compute(RValue{Kind: RValueUse, Use: Copy(result, TypeBool)}), nil
}
