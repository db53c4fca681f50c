package token

import (
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia

	// Int holds the decoded value of an IntLit.
	Int int32
	// Str holds the contents of a StringLit without the surrounding quotes.
	Str string
}

// IsLiteral reports whether the token is an integer, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the token is one of the six relational operators.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwPrint, KwAssert, KwLet, KwSet, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
