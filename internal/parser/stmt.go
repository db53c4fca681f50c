package parser

import (
	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

// parseStmt выбирает разбор по первому токену оператора.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.KwPrint:
		return p.parsePrint()
	case token.KwAssert:
		return p.parseAssert()
	case token.KwLet, token.KwSet:
		return p.parseBinding()
	default:
		return nil, p.errorAt(p.peek(), "statement")
	}
}

// print EXPR ;
func (p *Parser) parsePrint() (ast.Stmt, error) {
	kw := p.advance()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Loc: ast.Loc{Span: kw.Span.Cover(semi.Span)}, Value: value}, nil
}

// assert EXPR [, STRING] ;
func (p *Parser) parseAssert() (ast.Stmt, error) {
	kw := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	st := &ast.AssertStmt{Cond: cond}
	if p.at(token.Comma) {
		p.advance()
		msg, err := p.expect(token.StringLit)
		if err != nil {
			return nil, err
		}
		st.HasMessage = true
		st.Message = msg.Str
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	st.Span = kw.Span.Cover(semi.Span)
	return st, nil
}

// let IDENT = EXPR ;  |  set IDENT = EXPR ;
func (p *Parser) parseBinding() (ast.Stmt, error) {
	kw := p.advance()
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	loc := ast.Loc{Span: kw.Span.Cover(semi.Span)}
	if kw.Kind == token.KwLet {
		return &ast.DeclareStmt{Loc: loc, Name: name.Text, NameSpan: name.Span, Value: value}, nil
	}
	return &ast.AssignStmt{Loc: loc, Name: name.Text, NameSpan: name.Span, Value: value}, nil
}
