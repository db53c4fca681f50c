package sema

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/source"
)

// TypeError reports a type-rule or name-resolution violation. Resolution
// stops at the first one.
type TypeError struct {
	Message string
	Span    source.Span
}

func (e *TypeError) Error() string {
	return e.Message
}

func typeErrorf(span source.Span, format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...), Span: span}
}
