// Package ast defines the syntax tree produced by the parser.
//
// Statement and expression variants form closed sets: the Stmt and Expr
// interfaces carry unexported marker methods, so only this package can add
// variants, and every consumer switches over the full list.
package ast
