package mir

// Extern is a runtime primitive provided by the C library.
type Extern struct {
	Name     string
	Params   []Type
	Result   Type
	Variadic bool
	NoReturn bool
}

const (
	ExternPrintf = "printf"
	ExternFflush = "fflush"
	ExternAbort  = "abort"
)

// RuntimeExterns lists the only three primitives generated code may call.
func RuntimeExterns() []Extern {
	return []Extern{
		{Name: ExternPrintf, Params: []Type{TypeStr}, Result: TypeI32, Variadic: true},
		{Name: ExternFflush, Params: []Type{TypePtr}, Result: TypeI32},
		{Name: ExternAbort, Result: TypeVoid, NoReturn: true},
	}
}

// Module holds functions in source order. The program entry point calls
// them in exactly this order.
type Module struct {
	Externs []Extern
	Funcs   []*Func
}

func (m *Module) Extern(name string) (Extern, bool) {
	if m == nil {
		return Extern{}, false
	}
	for _, e := range m.Externs {
		if e.Name == name {
			return e, true
		}
	}
	return Extern{}, false
}
