package parser

import (
	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

type levelKind uint8

const (
	levelPrefix levelKind = iota
	levelBinary
	levelComparison
)

// precLevel описывает один уровень таблицы приоритетов.
type precLevel struct {
	kind    levelKind
	prefix  token.Kind
	prefOp  ast.PrefixOp
	binary  map[token.Kind]ast.BinaryOp
	compare map[token.Kind]ast.CompareOp
}

// precedenceTable is walked from index 0 (entered first, binds loosest) to
// the last index; one past the end is the primary level. A prefix level
// recurses into itself so operators stack ('!!x', '--x').
var precedenceTable = [...]precLevel{
	{kind: levelPrefix, prefix: token.Bang, prefOp: ast.PrefixNot},
	{kind: levelBinary, binary: map[token.Kind]ast.BinaryOp{
		token.AndAnd: ast.BinaryAnd,
		token.OrOr:   ast.BinaryOr,
	}},
	{kind: levelComparison, compare: map[token.Kind]ast.CompareOp{
		token.EqEq:   ast.CompareEq,
		token.BangEq: ast.CompareNe,
		token.Lt:     ast.CompareLt,
		token.LtEq:   ast.CompareLe,
		token.Gt:     ast.CompareGt,
		token.GtEq:   ast.CompareGe,
	}},
	{kind: levelBinary, binary: map[token.Kind]ast.BinaryOp{
		token.Plus:  ast.BinaryAdd,
		token.Minus: ast.BinarySub,
	}},
	{kind: levelBinary, binary: map[token.Kind]ast.BinaryOp{
		token.Star:  ast.BinaryMul,
		token.Slash: ast.BinaryDiv,
	}},
	{kind: levelPrefix, prefix: token.Minus, prefOp: ast.PrefixNeg},
}
