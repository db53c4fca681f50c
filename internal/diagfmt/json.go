package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Stage    string        `json:"stage,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput is the root object of `--format json` errors.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, mode PathMode) *LocationJSON {
	if fs == nil {
		return nil
	}
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}
	start, end := fs.Resolve(span)
	return &LocationJSON{
		File:      formatPath(f, mode),
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// BuildDiagnosticJSON converts d into its JSON shape.
func BuildDiagnosticJSON(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Stage:    string(d.Stage),
		Message:  d.Message,
	}
	if d.HasSpan {
		out.Location = makeLocation(d.Primary, fs, opts.PathMode)
	}
	return out
}

// FormatErrorJSON writes err as a single-entry DiagnosticsOutput.
func FormatErrorJSON(w io.Writer, err error, fs *source.FileSet, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: []DiagnosticJSON{BuildDiagnosticJSON(diag.FromError(err), fs, opts)},
		Count:       1,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
