package vm

import (
	"fmt"
	"io"

	"github.com/vivax3794/viv-script-blog/internal/mir"
)

// Tracer outputs execution traces for debugging. A nil *Tracer is valid and
// traces nothing.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// TraceInstr traces execution of an instruction.
// Format: <func> bb<id>:ip<ip> <instr>
func (t *Tracer) TraceInstr(fn *mir.Func, bb mir.BlockID, ip int, instr *mir.Instr) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "%s bb%d:ip%d %s\n", fn.Name, bb, ip, mir.FormatInstr(instr))
}

// TraceTerm traces execution of a terminator.
// Format: <func> bb<id>:term <terminator>
func (t *Tracer) TraceTerm(fn *mir.Func, bb mir.BlockID, term *mir.Terminator) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "%s bb%d:term %s\n", fn.Name, bb, mir.FormatTerm(term))
}

// TraceWrite records a local variable modification.
func (t *Tracer) TraceWrite(id mir.LocalID, slot *LocalSlot) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "    write L%d(%s) = %s\n", id, slot.Name, slot.V)
}
