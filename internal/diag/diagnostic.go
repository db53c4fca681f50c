package diag

import "github.com/vivax3794/viv-script-blog/internal/source"

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a rendered-ready view of one compiler error.
// HasSpan is false for errors that do not point into the source
// (missing clang, unreadable file, code generator bugs).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Stage    Stage
	Message  string
	Primary  source.Span
	HasSpan  bool
	Notes    []Note
}
