package ast

import "github.com/vivax3794/viv-script-blog/internal/source"

// Stmt is one of *PrintStmt, *AssertStmt, *DeclareStmt, *AssignStmt.
type Stmt interface {
	Node
	stmtNode()
}

// PrintStmt is 'print EXPR;'.
type PrintStmt struct {
	Loc
	Value Expr
}

// AssertStmt is 'assert EXPR [, STRING];'.
type AssertStmt struct {
	Loc
	Cond       Expr
	HasMessage bool
	Message    string
}

// DeclareStmt is 'let IDENT = EXPR;'.
type DeclareStmt struct {
	Loc
	Name     string
	NameSpan source.Span
	Value    Expr
}

// AssignStmt is 'set IDENT = EXPR;'.
type AssignStmt struct {
	Loc
	Name     string
	NameSpan source.Span
	Value    Expr
}

func (*PrintStmt) stmtNode()   {}
func (*AssertStmt) stmtNode()  {}
func (*DeclareStmt) stmtNode() {}
func (*AssignStmt) stmtNode()  {}
