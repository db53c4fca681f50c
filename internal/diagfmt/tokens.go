package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

type TokenOutput struct {
	Kind    string    `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Line    uint32    `json:"line"`
	Col     uint32    `json:"col"`
	Span    [2]uint32 `json:"span"`
	Leading []string  `json:"leading,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := triviaKinds(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Line:    pos.Line,
			Col:     pos.Col,
			Span:    [2]uint32{tok.Span.Start, tok.Span.End},
			Leading: triviaKinds(tok),
		}
		if tok.Kind != token.EOF {
			out.Text = tok.Text
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func triviaKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}
