package sema

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/ir"
)

// Resolver type-checks a module, resolves names against nested scopes and
// lowers the tree into typed IR. One Resolver serves one module compilation:
// its identifier counter is never reset or shared.
type Resolver struct {
	nextID ir.VariableID
	scopes []scope
	locals *[]ir.Local // таблица локальных переменных текущей функции
}

// NewResolver returns a resolver with an empty scope stack.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve is a convenience wrapper around NewResolver().ResolveModule.
func Resolve(mod *ast.Module) (*ir.Module, error) {
	return NewResolver().ResolveModule(mod)
}

// ResolveModule resolves every function in order. On the first *TypeError no
// partial module is returned.
func (r *Resolver) ResolveModule(mod *ast.Module) (*ir.Module, error) {
	out := &ir.Module{Functions: make([]*ir.Function, 0, len(mod.Functions))}
	for _, fn := range mod.Functions {
		irFn, err := r.resolveFunction(fn)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, irFn)
	}
	return out, nil
}

// Depth reports the number of open scope frames; zero between functions.
func (r *Resolver) Depth() int {
	return len(r.scopes)
}

func (r *Resolver) resolveFunction(fn *ast.Function) (*ir.Function, error) {
	out := &ir.Function{Name: fn.Name}
	r.locals = &out.Locals
	defer func() { r.locals = nil }()

	err := r.withScope(func() error {
		for _, st := range fn.Body {
			irSt, err := r.resolveStmt(st)
			if err != nil {
				return err
			}
			out.Body = append(out.Body, irSt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// allocate выдаёт новый идентификатор и записывает его в таблицу функции.
func (r *Resolver) allocate(name string, ty ir.Type) ir.VariableID {
	id := r.nextID
	r.nextID++
	*r.locals = append(*r.locals, ir.Local{ID: id, Type: ty, Name: name})
	return id
}

func (r *Resolver) resolveStmt(st ast.Stmt) (ir.Stmt, error) {
	switch st := st.(type) {
	case *ast.PrintStmt:
		v, err := r.resolveExpr(st.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Print{Value: v}, nil

	case *ast.AssertStmt:
		cond, err := r.resolveBool(st.Cond, "assert condition")
		if err != nil {
			return nil, err
		}
		return &ir.Assert{Cond: cond, HasMessage: st.HasMessage, Message: st.Message, Span: st.Span}, nil

	case *ast.DeclareStmt:
		// значение разрешается до связывания: 'let x = x + 1' видит внешний x
		v, err := r.resolveExpr(st.Value)
		if err != nil {
			return nil, err
		}
		id := r.allocate(st.Name, v.Type())
		r.bind(st.Name, binding{id: id, ty: v.Type()})
		return &ir.Assign{Target: id, Value: v}, nil

	case *ast.AssignStmt:
		b, ok := r.lookup(st.Name)
		if !ok {
			return nil, typeErrorf(st.NameSpan, "cannot set undeclared variable %q", st.Name)
		}
		v, err := r.resolveExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if v.Type() != b.ty {
			return nil, typeErrorf(st.Value.Location(), "cannot set %q of type %s to a %s value", st.Name, b.ty, v.Type())
		}
		return &ir.Assign{Target: b.id, Value: v}, nil

	default:
		return nil, fmt.Errorf("sema: unhandled statement %T", st)
	}
}
