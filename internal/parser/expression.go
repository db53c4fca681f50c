package parser

import (
	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseLevel(0)
}

// parseLevel: единая процедура precedence climbing, индексированная уровнем таблицы.
func (p *Parser) parseLevel(level int) (ast.Expr, error) {
	if level >= len(precedenceTable) {
		return p.parsePrimary()
	}
	lvl := &precedenceTable[level]

	switch lvl.kind {
	case levelPrefix:
		if !p.at(lvl.prefix) {
			return p.parseLevel(level + 1)
		}
		op := p.advance()
		x, err := p.parseLevel(level)
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpr{Loc: ast.Loc{Span: op.Span.Cover(x.Location())}, Op: lvl.prefOp, X: x}, nil

	case levelBinary:
		left, err := p.parseLevel(level + 1)
		if err != nil {
			return nil, err
		}
		for {
			op, ok := lvl.binary[p.peek().Kind]
			if !ok {
				return left, nil
			}
			p.advance()
			right, err := p.parseLevel(level + 1)
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{
				Loc:   ast.Loc{Span: left.Location().Cover(right.Location())},
				Left:  left,
				Op:    op,
				Right: right,
			}
		}

	case levelComparison:
		left, err := p.parseLevel(level + 1)
		if err != nil {
			return nil, err
		}
		var chain []ast.ComparisonLink
		for {
			op, ok := lvl.compare[p.peek().Kind]
			if !ok {
				break
			}
			opTok := p.advance()
			right, err := p.parseLevel(level + 1)
			if err != nil {
				return nil, err
			}
			chain = append(chain, ast.ComparisonLink{Op: op, OpSpan: opTok.Span, Right: right})
		}
		if len(chain) == 0 {
			return left, nil
		}
		span := left.Location().Cover(chain[len(chain)-1].Right.Location())
		return &ast.ComparisonExpr{Loc: ast.Loc{Span: span}, Left: left, Chain: chain}, nil
	}
	panic("parser: unknown precedence level kind")
}

// parsePrimary: '(' expr ')' | INT | true | false | IDENT
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Loc: ast.Loc{Span: tok.Span}, Value: tok.Int}, nil
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Loc: ast.Loc{Span: tok.Span}, Value: tok.Kind == token.KwTrue}, nil
	case token.Ident:
		p.advance()
		return &ast.VarRef{Loc: ast.Loc{Span: tok.Span}, Name: tok.Text}, nil
	default:
		return nil, p.errorAt(tok, "expression")
	}
}
