package mir

import "fmt"

type FuncID int32
type BlockID int32
type LocalID int32

const (
	NoFuncID  FuncID  = -1
	NoBlockID BlockID = -1
	NoLocalID LocalID = -1
)

// Type is the machine-level type of a MIR value.
type Type uint8

const (
	TypeVoid Type = iota
	TypeI32
	TypeBool
	// TypeStr is a pointer to a NUL-terminated constant string.
	TypeStr
	// TypePtr is an opaque pointer; only the null constant has this type.
	TypePtr
)

func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeI32:
		return "i32"
	case TypeBool:
		return "bool"
	case TypeStr:
		return "str"
	case TypePtr:
		return "ptr"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

type LocalFlags uint8

const (
	// LocalFlagUser marks a slot that backs a source-level variable.
	LocalFlagUser LocalFlags = 1 << iota
	// LocalFlagTemp marks a slot introduced by lowering.
	LocalFlagTemp
)

type Local struct {
	Type  Type
	Flags LocalFlags
	Name  string
}

type Place struct {
	Local LocalID
}

func (p Place) IsValid() bool {
	return p.Local != NoLocalID
}
