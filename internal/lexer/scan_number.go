package lexer

import (
	"strconv"

	"fortio.org/safecast"

	"github.com/vivax3794/viv-script-blog/internal/token"
)

// scanNumber читает десятичный литерал [0-9]+. Значение должно помещаться в int32.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	wide, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lx.fail(sp, "integer literal %s is too large", text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	v, err := safecast.Conv[int32](wide)
	if err != nil {
		lx.fail(sp, "integer literal %s does not fit in 32 bits", text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: v}
}
