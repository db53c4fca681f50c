package ir

import "github.com/vivax3794/viv-script-blog/internal/ast"

// Expr is either an IntExpr or a BoolExpr.
type Expr interface {
	Type() Type
}

// IntExpr is one of *IntLiteral, *IntVar, *IntNeg, *IntBinary.
type IntExpr interface {
	Expr
	intExpr()
}

// BoolExpr is one of *BoolLiteral, *BoolVar, *BoolNot, *ComparisonExpression,
// *ShortCircuit.
type BoolExpr interface {
	Expr
	boolExpr()
}

type IntLiteral struct {
	Value int32
}

type IntVar struct {
	ID VariableID
}

type IntNeg struct {
	X IntExpr
}

// IntOp enumerates integer arithmetic.
type IntOp uint8

const (
	IntAdd IntOp = iota
	IntSub
	IntMul
	IntDiv // signed, truncating
)

func (op IntOp) String() string {
	switch op {
	case IntAdd:
		return "+"
	case IntSub:
		return "-"
	case IntMul:
		return "*"
	case IntDiv:
		return "/"
	default:
		return "?"
	}
}

type IntBinary struct {
	Op    IntOp
	Left  IntExpr
	Right IntExpr
}

type BoolLiteral struct {
	Value bool
}

type BoolVar struct {
	ID VariableID
}

type BoolNot struct {
	X BoolExpr
}

// ComparisonLink compares two integers. In a chain, Right of link i is the
// same expression as Left of link i+1.
type ComparisonLink struct {
	Op    ast.CompareOp
	Left  IntExpr
	Right IntExpr
}

// ComparisonExpression is true when every link holds. All links are always
// evaluated (eager AND-fold).
type ComparisonExpression struct {
	Links []ComparisonLink
}

// LogicOp is a short-circuit operator.
type LogicOp uint8

const (
	LogicAnd LogicOp = iota
	LogicOr
)

func (op LogicOp) String() string {
	if op == LogicAnd {
		return "&&"
	}
	return "||"
}

// Absorbing returns the value that decides the result without looking at
// the right operand: false for &&, true for ||.
func (op LogicOp) Absorbing() bool {
	return op == LogicOr
}

// ShortCircuit evaluates Right only when Left does not decide the result.
// Result is the Boolean slot reserved by the resolver for the outcome.
type ShortCircuit struct {
	Op     LogicOp
	Left   BoolExpr
	Right  BoolExpr
	Result VariableID
}

func (*IntLiteral) Type() Type { return TypeInt }
func (*IntVar) Type() Type     { return TypeInt }
func (*IntNeg) Type() Type     { return TypeInt }
func (*IntBinary) Type() Type  { return TypeInt }

func (*BoolLiteral) Type() Type          { return TypeBool }
func (*BoolVar) Type() Type              { return TypeBool }
func (*BoolNot) Type() Type              { return TypeBool }
func (*ComparisonExpression) Type() Type { return TypeBool }
func (*ShortCircuit) Type() Type         { return TypeBool }

func (*IntLiteral) intExpr() {}
func (*IntVar) intExpr()     {}
func (*IntNeg) intExpr()     {}
func (*IntBinary) intExpr()  {}

func (*BoolLiteral) boolExpr()          {}
func (*BoolVar) boolExpr()              {}
func (*BoolNot) boolExpr()              {}
func (*ComparisonExpression) boolExpr() {}
func (*ShortCircuit) boolExpr()         {}
