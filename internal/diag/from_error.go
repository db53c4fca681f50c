package diag

import (
	"errors"

	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
)

// FromError classifies err. Unknown errors keep their message and get a
// code from the stage label alone.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: SevError, Message: err.Error()}
	stage, hasStage := StageOf(err)
	d.Stage = stage

	var (
		lexErr   *lexer.TokenizerError
		parseErr *parser.ParsingError
		typeErr  *sema.TypeError
	)
	switch {
	case errors.As(err, &lexErr):
		d.Code = LexError
		d.Message = lexErr.Message
		d.Primary, d.HasSpan = lexErr.Span, true
	case errors.As(err, &parseErr):
		d.Code = SynUnexpectedToken
		d.Message = parseErr.Describe()
		d.Primary, d.HasSpan = parseErr.Span, true
	case errors.As(err, &typeErr):
		d.Code = SemaTypeError
		d.Message = typeErr.Message
		d.Primary, d.HasSpan = typeErr.Span, true
	case hasStage:
		d.Code = codeForStage(stage)
		var se *StageError
		if errors.As(err, &se) {
			d.Message = se.Err.Error()
		}
	}
	return d
}

func codeForStage(stage Stage) Code {
	switch stage {
	case StageRead:
		return IOError
	case StageTokenize:
		return LexError
	case StageParse:
		return SynUnexpectedToken
	case StageResolve:
		return SemaTypeError
	case StageLower, StageEmit:
		return CodegenInvariant
	case StageLink:
		return ToolchainFailed
	case StageRun:
		return RuntimeAbort
	}
	return UnknownCode
}
