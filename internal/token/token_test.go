package token_test

import (
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"print":  token.KwPrint,
		"assert": token.KwAssert,
		"let":    token.KwLet,
		"set":    token.KwSet,
		"true":   token.KwTrue,
		"false":  token.KwFalse,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	// регистр важен
	for _, s := range []string{"Print", "LET", "fn", "printx", ""} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true", s)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := token.Invalid; k <= token.RBrace; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := map[token.Kind]string{
		token.Semicolon: "';'",
		token.AndAnd:    "'&&'",
		token.KwLet:     "'let'",
		token.EOF:       "end of input",
		token.Ident:     "identifier",
		token.IntLit:    "integer",
	}
	for k, want := range cases {
		if got := k.Describe(); got != want {
			t.Errorf("%v.Describe() = %q, want %q", k, got, want)
		}
	}
}

func TestPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq} {
		if !(token.Token{Kind: k}).IsComparison() {
			t.Errorf("%v should be a comparison", k)
		}
	}
	if (token.Token{Kind: token.Assign}).IsComparison() {
		t.Error("Assign must not be a comparison")
	}
	if !(token.Token{Kind: token.KwTrue}).IsLiteral() || (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Error("literal classification is wrong")
	}
	if !(token.Token{Kind: token.KwSet}).IsKeyword() || !(token.Token{Kind: token.Ident}).IsIdent() {
		t.Error("keyword/ident classification is wrong")
	}
}
