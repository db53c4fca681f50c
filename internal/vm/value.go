package vm

import (
	"fmt"
	"strconv"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

// ValueKind identifies the dynamic type of a Value.
type ValueKind uint8

const (
	VKInvalid ValueKind = iota
	VKInt
	VKBool
	VKStr
	VKNull
)

// Value is a runtime value. Integers are 32-bit and wrap like the generated
// code does.
type Value struct {
	Kind ValueKind
	Int  int32
	Bool bool
	Str  string
}

func MakeInt(v int32) Value  { return Value{Kind: VKInt, Int: v} }
func MakeBool(v bool) Value  { return Value{Kind: VKBool, Bool: v} }
func MakeStr(s string) Value { return Value{Kind: VKStr, Str: s} }
func MakeNull() Value        { return Value{Kind: VKNull} }

func (v Value) String() string {
	switch v.Kind {
	case VKInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case VKBool:
		return strconv.FormatBool(v.Bool)
	case VKStr:
		return strconv.Quote(v.Str)
	case VKNull:
		return "null"
	default:
		return "<invalid>"
	}
}

func kindFor(t mir.Type) ValueKind {
	switch t {
	case mir.TypeI32:
		return VKInt
	case mir.TypeBool:
		return VKBool
	case mir.TypeStr:
		return VKStr
	case mir.TypePtr:
		return VKNull
	default:
		return VKInvalid
	}
}

func constValue(c *mir.Const) (Value, error) {
	switch c.Kind {
	case mir.ConstInt:
		return MakeInt(c.IntValue), nil
	case mir.ConstBool:
		return MakeBool(c.BoolValue), nil
	case mir.ConstString:
		return MakeStr(c.StringValue), nil
	case mir.ConstNull:
		return MakeNull(), nil
	default:
		return Value{}, fmt.Errorf("unknown const kind %d", c.Kind)
	}
}
