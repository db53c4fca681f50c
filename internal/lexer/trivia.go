package lexer

import (
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// collectLeadingTrivia пропускает пробельные символы и собирает '#' комментарии
// (до конца строки) перед значимым токеном.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		case '#':
			start := lx.cursor.Mark()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			if lx.opts.DropComments {
				continue
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaLineComment,
				Span: sp,
				Text: lx.text(sp),
			})
		default:
			return
		}
	}
}
