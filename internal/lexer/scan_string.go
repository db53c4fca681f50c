package lexer

import (
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// scanString читает "..." без escape-последовательностей.
// Перевод строки внутри литерала и отсутствие закрывающей кавычки: ошибка.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			text := lx.text(sp)
			return token.Token{Kind: token.StringLit, Span: sp, Text: text, Str: text[1 : len(text)-1]}
		case '\n':
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.fail(lx.cursor.SpanFrom(nl), "newline in string literal")
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.fail(sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
