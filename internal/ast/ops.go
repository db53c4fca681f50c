package ast

// PrefixOp enumerates prefix operator kinds.
type PrefixOp uint8

const (
	// PrefixNot represents logical negation (!).
	PrefixNot PrefixOp = iota
	// PrefixNeg represents arithmetic negation (-).
	PrefixNeg
)

func (op PrefixOp) String() string {
	switch op {
	case PrefixNot:
		return "!"
	case PrefixNeg:
		return "-"
	default:
		return "?"
	}
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// BinaryAdd represents the addition operator (+).
	BinaryAdd BinaryOp = iota
	// BinarySub represents the subtraction operator (-).
	BinarySub
	// BinaryMul represents the multiplication operator (*).
	BinaryMul
	// BinaryDiv represents the division operator (/).
	BinaryDiv
	// BinaryAnd represents the short-circuit AND operator (&&).
	BinaryAnd
	// BinaryOr represents the short-circuit OR operator (||).
	BinaryOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryAnd:
		return "&&"
	case BinaryOr:
		return "||"
	default:
		return "?"
	}
}

// IsLogical reports whether op is && or ||.
func (op BinaryOp) IsLogical() bool {
	return op == BinaryAnd || op == BinaryOr
}

// CompareOp enumerates relational operators.
type CompareOp uint8

const (
	CompareEq CompareOp = iota // ==
	CompareNe                  // !=
	CompareLt                  // <
	CompareLe                  // <=
	CompareGt                  // >
	CompareGe                  // >=
)

func (op CompareOp) String() string {
	switch op {
	case CompareEq:
		return "=="
	case CompareNe:
		return "!="
	case CompareLt:
		return "<"
	case CompareLe:
		return "<="
	case CompareGt:
		return ">"
	case CompareGe:
		return ">="
	default:
		return "?"
	}
}

// Eval applies the comparison to two 32-bit signed integers.
func (op CompareOp) Eval(a, b int32) bool {
	switch op {
	case CompareEq:
		return a == b
	case CompareNe:
		return a != b
	case CompareLt:
		return a < b
	case CompareLe:
		return a <= b
	case CompareGt:
		return a > b
	case CompareGe:
		return a >= b
	default:
		panic("ast: unknown comparison operator")
	}
}
