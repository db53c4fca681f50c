package ir

import "fmt"

// Type is the static type of a value.
type Type uint8

const (
	TypeInt Type = iota + 1
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "Int"
	case TypeBool:
		return "Boolean"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// VariableID names one storage slot. IDs are allocated by a single resolver
// for a whole module and are never reused.
type VariableID uint32

func (id VariableID) String() string {
	return fmt.Sprintf("v%d", uint32(id))
}
