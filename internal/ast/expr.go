package ast

import "github.com/vivax3794/viv-script-blog/internal/source"

// Expr is one of *IntLit, *BoolLit, *VarRef, *PrefixExpr, *BinaryExpr,
// *ComparisonExpr.
type Expr interface {
	Node
	exprNode()
}

// IntLit is a decimal integer literal.
type IntLit struct {
	Loc
	Value int32
}

// BoolLit is 'true' or 'false'.
type BoolLit struct {
	Loc
	Value bool
}

// VarRef is a bare identifier used as a value.
type VarRef struct {
	Loc
	Name string
}

// PrefixExpr is '!X' or '-X'.
type PrefixExpr struct {
	Loc
	Op PrefixOp
	X  Expr
}

// BinaryExpr is a left-associative arithmetic or logical operation.
type BinaryExpr struct {
	Loc
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// ComparisonExpr is a flat relational chain 'Left op1 r1 op2 r2 ...'.
// Chain always has at least one link.
type ComparisonExpr struct {
	Loc
	Left  Expr
	Chain []ComparisonLink
}

// ComparisonLink is one '(op, operand)' step of a chain.
type ComparisonLink struct {
	Op     CompareOp
	OpSpan source.Span
	Right  Expr
}

func (*IntLit) exprNode()         {}
func (*BoolLit) exprNode()        {}
func (*VarRef) exprNode()         {}
func (*PrefixExpr) exprNode()     {}
func (*BinaryExpr) exprNode()     {}
func (*ComparisonExpr) exprNode() {}
