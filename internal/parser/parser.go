package parser

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	nextFn   int
	lastSpan source.Span // span последнего съеденного токена
}

// Parse builds a module from a token stream produced by lexer.Tokenize.
// The first grammar violation aborts parsing with a *ParsingError.
func Parse(file *source.File, toks []token.Token) (*ast.Module, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		end := source.Span{File: file.ID, Start: uint32(len(file.Content)), End: uint32(len(file.Content))}
		toks = append(toks, token.Token{Kind: token.EOF, Span: end})
	}
	p := &Parser{file: file, toks: toks}
	return p.parseModule()
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		// поток исчерпан: EOF повторяется бесконечно
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of kind k or fails with a ParsingError naming it.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind != k {
		return tok, p.errorAt(tok, k.Describe())
	}
	return p.advance(), nil
}

// parseModule: основной цикл верхнего уровня, пока не EOF, функция.
func (p *Parser) parseModule() (*ast.Module, error) {
	mod := &ast.Module{Loc: ast.Loc{Span: p.peek().Span}}
	for !p.at(token.EOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		mod.Functions = append(mod.Functions, fn)
	}
	mod.Span = mod.Span.Cover(p.peek().Span)
	return mod, nil
}

// parseFunction: '$' '{' statement* '}'
func (p *Parser) parseFunction() (*ast.Function, error) {
	open, err := p.expect(token.Dollar)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(token.LBrace); err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: fmt.Sprintf("fn%d", p.nextFn)}
	p.nextFn++
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, p.errorAt(p.peek(), "statement or '}'")
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, st)
	}
	closing := p.advance()
	fn.Span = open.Span.Cover(closing.Span)
	return fn, nil
}
