package lexer

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/source"
)

// TokenizerError is the first lexical error in a file. Tokenizing stops there.
type TokenizerError struct {
	Line    uint32
	Char    uint32
	Message string
	Span    source.Span
}

func (e *TokenizerError) Error() string {
	return fmt.Sprintf("line %d, char %d: %s", e.Line, e.Char, e.Message)
}

func (lx *Lexer) fail(sp source.Span, format string, args ...any) {
	if lx.err != nil {
		return
	}
	pos := lx.file.Position(sp.Start)
	lx.err = &TokenizerError{
		Line:    pos.Line,
		Char:    pos.Col,
		Message: fmt.Sprintf(format, args...),
		Span:    sp,
	}
}
