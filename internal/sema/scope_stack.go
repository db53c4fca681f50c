package sema

import "github.com/vivax3794/viv-script-blog/internal/ir"

type binding struct {
	id ir.VariableID
	ty ir.Type
}

// scope: один лексический кадр: имя -> (идентификатор, тип).
type scope map[string]binding

func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) leaveScope() {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// withScope runs fn inside a fresh frame; the frame is popped on every exit path.
func (r *Resolver) withScope(fn func() error) error {
	r.pushScope()
	defer r.leaveScope()
	return fn()
}

func (r *Resolver) bind(name string, b binding) {
	r.scopes[len(r.scopes)-1][name] = b
}

// lookup walks frames from innermost to outermost.
func (r *Resolver) lookup(name string) (binding, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}
