package lexer

import (
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// Options tunes the lexer.
type Options struct {
	// DropComments discards '#' comments instead of attaching them as trivia.
	DropComments bool
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	err    *TokenizerError
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file. The result always ends with a single EOF
// token; on the first lexical error it returns that *TokenizerError instead.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		if err := lx.Err(); err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Err returns the first lexical error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF или ошибки всегда возвращает EOF / Invalid.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return token.Token{Kind: token.Invalid, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case lx.cursor.EOF():
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
