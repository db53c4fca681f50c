package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

func parseSource(t *testing.T, src string) (*ast.Module, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.viv", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	return parser.Parse(file, toks)
}

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return mod
}

// parseExpr разбирает выражение внутри 'print ...;'
func parseExpr(t *testing.T, expr string) ast.Expr {
	t.Helper()
	mod := mustParse(t, "$ { print "+expr+"; }")
	return mod.Functions[0].Body[0].(*ast.PrintStmt).Value
}

// sexpr renders an expression as an s-expression for structural comparison.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return fmt.Sprint(e.Value)
	case *ast.BoolLit:
		return fmt.Sprint(e.Value)
	case *ast.VarRef:
		return e.Name
	case *ast.PrefixExpr:
		return fmt.Sprintf("(%s %s)", e.Op, sexpr(e.X))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op, sexpr(e.Left), sexpr(e.Right))
	case *ast.ComparisonExpr:
		var b strings.Builder
		b.WriteString("(cmp ")
		b.WriteString(sexpr(e.Left))
		for _, l := range e.Chain {
			fmt.Fprintf(&b, " %s %s", l.Op, sexpr(l.Right))
		}
		b.WriteString(")")
		return b.String()
	default:
		panic(fmt.Sprintf("unhandled %T", e))
	}
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"x", "x"},
		{"true", "true"},
		{"1+2*3", "(+ 1 (* 2 3))"},
		{"(1+2)*3", "(* (+ 1 2) 3)"},
		{"1-2-3", "(- (- 1 2) 3)"},
		{"8/4/2", "(/ (/ 8 4) 2)"},
		{"-x*2", "(* (- x) 2)"},
		{"--x", "(- (- x))"},
		{"1 - -1", "(- 1 (- 1))"},
		{"a<b", "(cmp a < b)"},
		{"a<b<=c<d", "(cmp a < b <= c < d)"},
		{"a+1 == b*2 != c", "(cmp (+ a 1) == (* b 2) != c)"},
		{"a && b || c", "(|| (&& a b) c)"},
		{"a < b && b < c", "(&& (cmp a < b) (cmp b < c))"},
		{"!a", "(! a)"},
		{"!!a", "(! (! a))"},
		{"!a && b", "(! (&& a b))"},
		{"a && (!b)", "(&& a (! b))"},
		{"!(1 == 2)", "(! (cmp 1 == 2))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sexpr(parseExpr(t, tt.input)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComparisonChainIsFlat(t *testing.T) {
	e := parseExpr(t, "a<b<=c<d")
	cmp, ok := e.(*ast.ComparisonExpr)
	if !ok {
		t.Fatalf("expected *ast.ComparisonExpr, got %T", e)
	}
	if len(cmp.Chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(cmp.Chain))
	}
	wantOps := []ast.CompareOp{ast.CompareLt, ast.CompareLe, ast.CompareLt}
	for i, link := range cmp.Chain {
		if link.Op != wantOps[i] {
			t.Errorf("link %d op = %v, want %v", i, link.Op, wantOps[i])
		}
		if _, nested := link.Right.(*ast.ComparisonExpr); nested {
			t.Errorf("link %d holds a nested comparison", i)
		}
	}
	if _, nested := cmp.Left.(*ast.ComparisonExpr); nested {
		t.Error("left operand is a nested comparison")
	}
}

func TestStatements(t *testing.T) {
	mod := mustParse(t, `
$ {
	let x = 1;
	set x = x + 1;
	print x;
	assert x == 2;
	assert x == 3, "x is not three";
}
$ { print true; }
`)
	if len(mod.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(mod.Functions))
	}
	if mod.Functions[0].Name == mod.Functions[1].Name {
		t.Errorf("functions share name %q", mod.Functions[0].Name)
	}
	body := mod.Functions[0].Body
	if len(body) != 5 {
		t.Fatalf("statements = %d, want 5", len(body))
	}
	if d, ok := body[0].(*ast.DeclareStmt); !ok || d.Name != "x" {
		t.Errorf("stmt 0 = %#v", body[0])
	}
	if a, ok := body[1].(*ast.AssignStmt); !ok || a.Name != "x" || sexpr(a.Value) != "(+ x 1)" {
		t.Errorf("stmt 1 = %#v", body[1])
	}
	if _, ok := body[2].(*ast.PrintStmt); !ok {
		t.Errorf("stmt 2 = %#v", body[2])
	}
	if a, ok := body[3].(*ast.AssertStmt); !ok || a.HasMessage {
		t.Errorf("stmt 3 = %#v", body[3])
	}
	if a, ok := body[4].(*ast.AssertStmt); !ok || !a.HasMessage || a.Message != "x is not three" {
		t.Errorf("stmt 4 = %#v", body[4])
	}
}

func TestEmptyModuleAndFunction(t *testing.T) {
	if mod := mustParse(t, ""); len(mod.Functions) != 0 {
		t.Errorf("empty source produced %d functions", len(mod.Functions))
	}
	if mod := mustParse(t, "$ { }"); len(mod.Functions) != 1 || len(mod.Functions[0].Body) != 0 {
		t.Errorf("empty function parsed wrong: %#v", mod)
	}
}

func TestParsingErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     uint32
		char     uint32
		got      token.Kind
		expected string
	}{
		{"missing semicolon", "$ { print 1 }", 1, 13, token.RBrace, "';'"},
		{"top level statement", "print 1;", 1, 1, token.KwPrint, "'$'"},
		{"missing brace", "$ print 1; }", 1, 3, token.KwPrint, "'{'"},
		{"unclosed function", "$ { print 1;", 1, 13, token.EOF, "statement or '}'"},
		{"bad statement", "$ {\n  x = 1;\n}", 2, 3, token.Ident, "statement"},
		{"let without name", "$ { let = 1; }", 1, 9, token.Assign, "identifier"},
		{"assert message not string", "$ { assert true, 5; }", 1, 18, token.IntLit, "string"},
		{"dangling operator", "$ { print 1 +; }", 1, 14, token.Semicolon, "expression"},
		{"unclosed paren", "$ { print (1 + 2; }", 1, 17, token.Semicolon, "')'"},
		{"single ampersand", "$ { print a & b; }", 1, 13, token.Amp, "';'"},
		{"not inside and", "$ { print a && !b; }", 1, 16, token.Bang, "expression"},
		{"ran out of tokens", "$ { let x =", 1, 12, token.EOF, "expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, tt.input)
			var pe *parser.ParsingError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParsingError, got %v", err)
			}
			if pe.Line != tt.line || pe.Char != tt.char {
				t.Errorf("position %d:%d, want %d:%d (%v)", pe.Line, pe.Char, tt.line, tt.char, pe)
			}
			if pe.Got != tt.got {
				t.Errorf("got kind %v, want %v", pe.Got, tt.got)
			}
			if pe.Expected != tt.expected {
				t.Errorf("expected %q, want %q", pe.Expected, tt.expected)
			}
		})
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("raw.viv", []byte("$ {")))
	toks := []token.Token{
		{Kind: token.Dollar, Span: source.Span{Start: 0, End: 1}},
		{Kind: token.LBrace, Span: source.Span{Start: 2, End: 3}},
	}
	_, err := parser.Parse(file, toks)
	var pe *parser.ParsingError
	if !errors.As(err, &pe) || pe.Got != token.EOF {
		t.Fatalf("expected ParsingError at end of input, got %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := parseSource(t, "$ { let 5 = 1; }")
	want := "line 1, char 9: expected identifier, got integer 5"
	if err == nil || err.Error() != want {
		t.Fatalf("error = %v, want %q", err, want)
	}
}

func TestSpans(t *testing.T) {
	src := "$ { print 1 + 22; }"
	mod := mustParse(t, src)
	fn := mod.Functions[0]
	if fn.Span.Start != 0 || int(fn.Span.End) != len(src) {
		t.Errorf("function span = %v", fn.Span)
	}
	pr := fn.Body[0].(*ast.PrintStmt)
	if got := src[pr.Span.Start:pr.Span.End]; got != "print 1 + 22;" {
		t.Errorf("print span covers %q", got)
	}
	if got := src[pr.Value.Location().Start:pr.Value.Location().End]; got != "1 + 22" {
		t.Errorf("expr span covers %q", got)
	}
}
