package lexer

import (
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// Жадность: сначала 2-символьные (==, !=, <=, >=, &&, ||), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '$':
		return emit(token.Dollar)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	default:
		// неизвестный символ: захватываем руну целиком для сообщения
		lx.cursor.Off = uint32(start)
		r, _ := lx.peekRune()
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.fail(sp, "unexpected character %q", r)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}
