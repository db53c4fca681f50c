package mir

// InstrKind enumerates instruction kinds in MIR.
type InstrKind uint8

const (
	// InstrAssign represents an assignment instruction.
	InstrAssign InstrKind = iota
	// InstrCall represents a call to a runtime primitive.
	InstrCall
	// InstrNop represents a no-op instruction.
	InstrNop
)

// Instr represents a MIR instruction.
type Instr struct {
	Kind InstrKind

	Assign AssignInstr
	Call   CallInstr
}

// AssignInstr represents an assignment instruction.
type AssignInstr struct {
	Dst Place
	Src RValue
}

// Callee names a declared extern.
type Callee struct {
	Name string
}

// CallInstr represents a call whose result, if any, is discarded.
type CallInstr struct {
	Callee Callee
	Args   []Operand
}

// OperandKind distinguishes operand types.
type OperandKind uint8

const (
	// OperandConst represents a constant operand.
	OperandConst OperandKind = iota
	// OperandCopy reads the current value of a place.
	OperandCopy
)

// Operand represents a MIR operand.
type Operand struct {
	Kind OperandKind
	Type Type

	Const Const
	Place Place
}

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	// ConstInt represents a 32-bit integer constant.
	ConstInt ConstKind = iota
	// ConstBool represents a boolean constant.
	ConstBool
	// ConstString represents a string constant.
	ConstString
	// ConstNull represents the null pointer.
	ConstNull
)

// Const represents a MIR constant.
type Const struct {
	Kind ConstKind

	IntValue    int32
	BoolValue   bool
	StringValue string
}

// RValueKind distinguishes right-hand value kinds.
type RValueKind uint8

const (
	// RValueUse represents a use of a value.
	RValueUse RValueKind = iota
	// RValueUnaryOp represents a unary operation.
	RValueUnaryOp
	// RValueBinaryOp represents a binary operation.
	RValueBinaryOp
	// RValueSelect picks one of two operands by a boolean condition.
	RValueSelect
)

// RValue represents a right-hand value in MIR.
type RValue struct {
	Kind RValueKind

	Use    Operand
	Unary  UnaryOp
	Binary BinaryOp
	Select SelectOp
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	UnNeg UnOp = iota // wrapping i32 negation
	UnNot
)

func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "neg"
	case UnNot:
		return "not"
	default:
		return "?"
	}
}

// BinOp enumerates binary operators. Arithmetic wraps on overflow; BinDiv
// requires a divisor that is neither zero nor -1 against the minimum value,
// which lowering guards with explicit trap blocks.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinAnd // boolean conjunction without short-circuit
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

var binOpNames = [...]string{
	BinAdd: "add",
	BinSub: "sub",
	BinMul: "mul",
	BinDiv: "sdiv",
	BinAnd: "and",
	BinEq:  "eq",
	BinNe:  "ne",
	BinLt:  "lt",
	BinLe:  "le",
	BinGt:  "gt",
	BinGe:  "ge",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// IsComparison reports whether op compares two integers.
func (op BinOp) IsComparison() bool {
	return op >= BinEq && op <= BinGe
}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	Op      UnOp
	Operand Operand
}

// BinaryOp represents a binary operation.
type BinaryOp struct {
	Op    BinOp
	Left  Operand
	Right Operand
}

// SelectOp represents cond ? Then : Else without branching.
type SelectOp struct {
	Cond Operand
	Then Operand
	Else Operand
}

// Result type of the rvalue.
func (rv *RValue) Type() Type {
	switch rv.Kind {
	case RValueUse:
		return rv.Use.Type
	case RValueUnaryOp:
		if rv.Unary.Op == UnNot {
			return TypeBool
		}
		return TypeI32
	case RValueBinaryOp:
		if rv.Binary.Op == BinAnd || rv.Binary.Op.IsComparison() {
			return TypeBool
		}
		return TypeI32
	case RValueSelect:
		return rv.Select.Then.Type
	default:
		return TypeVoid
	}
}

func IntConst(v int32) Operand {
	return Operand{Kind: OperandConst, Type: TypeI32, Const: Const{Kind: ConstInt, IntValue: v}}
}

func BoolConst(v bool) Operand {
	return Operand{Kind: OperandConst, Type: TypeBool, Const: Const{Kind: ConstBool, BoolValue: v}}
}

func StringConst(s string) Operand {
	return Operand{Kind: OperandConst, Type: TypeStr, Const: Const{Kind: ConstString, StringValue: s}}
}

func NullConst() Operand {
	return Operand{Kind: OperandConst, Type: TypePtr, Const: Const{Kind: ConstNull}}
}

func Copy(local LocalID, ty Type) Operand {
	return Operand{Kind: OperandCopy, Type: ty, Place: Place{Local: local}}
}
