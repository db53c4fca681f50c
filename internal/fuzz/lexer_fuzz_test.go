package fuzztests

import (
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzTokenize(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.viv", input))

		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		var prev uint32
		for i, tok := range toks {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d span %v out of order", i, tok.Span)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %d span %v past end of content", i, tok.Span)
			}
			prev = tok.Span.End
		}
	})
}
