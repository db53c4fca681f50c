package token

import "github.com/vivax3794/viv-script-blog/internal/source"

type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string // включая ведущий '#'
}

func (k TriviaKind) String() string {
	if k == TriviaLineComment {
		return "LineComment"
	}
	return "Trivia(?)"
}
