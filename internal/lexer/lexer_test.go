package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.viv", []byte(input))
	return fs.Get(id)
}

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(makeFile(input), lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return toks
}

// expectTokens проверяет последовательность токенов (EOF включён)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	toks := tokenize(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s", len(expected), len(toks), input, tokensToString(toks))
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectError(t *testing.T, input string, line, char uint32, msgPart string) {
	t.Helper()
	_, err := lexer.Tokenize(makeFile(input), lexer.Options{})
	var te *lexer.TokenizerError
	if !errors.As(err, &te) {
		t.Fatalf("Tokenize(%q): expected *TokenizerError, got %v", input, err)
	}
	if te.Line != line || te.Char != char {
		t.Errorf("Tokenize(%q): position %d:%d, want %d:%d", input, te.Line, te.Char, line, char)
	}
	if !strings.Contains(te.Message, msgPart) {
		t.Errorf("Tokenize(%q): message %q does not mention %q", input, te.Message, msgPart)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestPrintStatement(t *testing.T) {
	toks := tokenize(t, "print 5;")
	expectTokens(t, "print 5;", []token.Kind{token.KwPrint, token.IntLit, token.Semicolon, token.EOF})
	if toks[1].Int != 5 {
		t.Errorf("integer value = %d, want 5", toks[1].Int)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	expectTokens(t, "print true false assert let set printer Let _x x1 переменная", []token.Kind{
		token.KwPrint, token.KwTrue, token.KwFalse, token.KwAssert, token.KwLet, token.KwSet,
		token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.EOF,
	})
}

func TestTwoCharOperatorsFallBack(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"==", []token.Kind{token.EqEq, token.EOF}},
		{"= =", []token.Kind{token.Assign, token.Assign, token.EOF}},
		{"!=", []token.Kind{token.BangEq, token.EOF}},
		{"!!", []token.Kind{token.Bang, token.Bang, token.EOF}},
		{"<=<", []token.Kind{token.LtEq, token.Lt, token.EOF}},
		{">=>", []token.Kind{token.GtEq, token.Gt, token.EOF}},
		{"&&&", []token.Kind{token.AndAnd, token.Amp, token.EOF}},
		{"|||", []token.Kind{token.OrOr, token.Pipe, token.EOF}},
		{"a<b<=c", []token.Kind{token.Ident, token.Lt, token.Ident, token.LtEq, token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
		})
	}
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, "; $ , { } ( ) - + * /", []token.Kind{
		token.Semicolon, token.Dollar, token.Comma, token.LBrace, token.RBrace,
		token.LParen, token.RParen, token.Minus, token.Plus, token.Star, token.Slash, token.EOF,
	})
}

func TestStringLiteral(t *testing.T) {
	toks := tokenize(t, "assert false, \"oops # not a comment\";")
	if toks[3].Kind != token.StringLit {
		t.Fatalf("expected string literal, got %s", tokensToString(toks))
	}
	if toks[3].Str != "oops # not a comment" {
		t.Errorf("Str = %q", toks[3].Str)
	}
	if toks[3].Text != "\"oops # not a comment\"" {
		t.Errorf("Text = %q", toks[3].Text)
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	toks := tokenize(t, "# expect: 7\nprint 7; # trailing\n")
	expectTokens(t, "# expect: 7\nprint 7; # trailing\n", []token.Kind{token.KwPrint, token.IntLit, token.Semicolon, token.EOF})
	if len(toks[0].Leading) != 1 || toks[0].Leading[0].Text != "# expect: 7" {
		t.Errorf("leading trivia of print = %+v", toks[0].Leading)
	}
	eof := toks[len(toks)-1]
	if len(eof.Leading) != 1 || eof.Leading[0].Text != "# trailing" {
		t.Errorf("leading trivia of EOF = %+v", eof.Leading)
	}

	dropped, err := lexer.Tokenize(makeFile("# c\nprint 1;"), lexer.Options{DropComments: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(dropped[0].Leading) != 0 {
		t.Errorf("DropComments kept trivia: %+v", dropped[0].Leading)
	}
}

func TestTokenPositionsAreTokenStarts(t *testing.T) {
	file := makeFile("let x = 10;\n  print x;")
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []source.LineCol{
		{Line: 1, Col: 1}, {Line: 1, Col: 5}, {Line: 1, Col: 7}, {Line: 1, Col: 9}, {Line: 1, Col: 11},
		{Line: 2, Col: 3}, {Line: 2, Col: 9}, {Line: 2, Col: 10}, {Line: 2, Col: 11},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %s", tokensToString(toks))
	}
	for i, tok := range toks {
		if got := file.Position(tok.Span.Start); got != want[i] {
			t.Errorf("token %d (%v): position %+v, want %+v", i, tok.Kind, got, want[i])
		}
	}
}

func TestIntegerRange(t *testing.T) {
	toks := tokenize(t, "2147483647")
	if toks[0].Int != 2147483647 {
		t.Errorf("max int32 decoded as %d", toks[0].Int)
	}
	expectError(t, "print 2147483648;", 1, 7, "32 bits")
	expectError(t, "print 99999999999999999999999;", 1, 7, "too large")
}

func TestTokenizerErrors(t *testing.T) {
	expectError(t, "print 1 @ 2;", 1, 9, "unexpected character")
	expectError(t, "print 1;\nprint ~;", 2, 7, "'~'")
	expectError(t, "assert false, \"oops", 1, 15, "unterminated string")
	expectError(t, "assert false, \"a\nb\";", 1, 17, "newline in string")
	expectError(t, "let x = 1 § 2;", 1, 11, "'§'")
}

func TestEmptyInputYieldsOnlyEOF(t *testing.T) {
	expectTokens(t, "", []token.Kind{token.EOF})
	expectTokens(t, "   \n\t# only a comment", []token.Kind{token.EOF})
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New(makeFile("let x"), lexer.Options{})
	if p := lx.Peek(); p.Kind != token.KwLet {
		t.Fatalf("Peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.KwLet {
		t.Fatalf("Next after Peek = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident {
		t.Fatalf("second Next = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("third Next = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("Next after EOF = %v", n.Kind)
	}
}
