package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vivax3794/viv-script-blog/internal/ir"
)

// FormatIRPretty writes the resolved module in the ir listing format.
func FormatIRPretty(w io.Writer, mod *ir.Module) error {
	return ir.Dump(w, mod)
}

type IRLocalOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

type IRFunctionOutput struct {
	Name   string          `json:"name"`
	Locals []IRLocalOutput `json:"locals"`
	Body   []string        `json:"body"`
}

// FormatIRJSON writes one object per function; statements use the
// single-line ir.FormatStmt rendering.
func FormatIRJSON(w io.Writer, mod *ir.Module) error {
	out := make([]IRFunctionOutput, 0, len(mod.Functions))
	for _, fn := range mod.Functions {
		f := IRFunctionOutput{
			Name:   fn.Name,
			Locals: make([]IRLocalOutput, 0, len(fn.Locals)),
			Body:   make([]string, 0, len(fn.Body)),
		}
		for _, l := range fn.Locals {
			f.Locals = append(f.Locals, IRLocalOutput{
				ID:        l.ID.String(),
				Name:      l.Name,
				Type:      l.Type.String(),
				Synthetic: l.Synthetic(),
			})
		}
		for _, st := range fn.Body {
			f.Body = append(f.Body, ir.FormatStmt(st))
		}
		out = append(out, f)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
