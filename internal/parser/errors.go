package parser

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// ParsingError reports the first token that did not fit the grammar.
// Running past the end of the token stream is reported the same way, with
// Got set to token.EOF.
type ParsingError struct {
	Line     uint32
	Char     uint32
	Got      token.Kind
	GotText  string
	Expected string
	Span     source.Span
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("line %d, char %d: %s", e.Line, e.Char, e.Describe())
}

// Describe is the message without the position prefix.
func (e *ParsingError) Describe() string {
	got := e.Got.Describe()
	if e.GotText != "" && (e.Got == token.Ident || e.Got == token.IntLit || e.Got == token.StringLit) {
		got = fmt.Sprintf("%s %s", got, e.GotText)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, got)
}

func (p *Parser) errorAt(tok token.Token, expected string) error {
	pos := p.file.Position(tok.Span.Start)
	return &ParsingError{
		Line:     pos.Line,
		Char:     pos.Col,
		Got:      tok.Kind,
		GotText:  tok.Text,
		Expected: expected,
		Span:     tok.Span,
	}
}
