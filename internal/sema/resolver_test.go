package sema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/ir"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.viv", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	mod, err := parser.Parse(file, toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return mod
}

func mustResolve(t *testing.T, src string) *ir.Module {
	t.Helper()
	mod, err := sema.Resolve(parseModule(t, src))
	if err != nil {
		t.Fatalf("resolve %q: %v", src, err)
	}
	return mod
}

func expectTypeError(t *testing.T, src, msgPart string) {
	t.Helper()
	mod, err := sema.Resolve(parseModule(t, src))
	var te *sema.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("resolve %q: expected *TypeError, got %v", src, err)
	}
	if mod != nil {
		t.Errorf("resolve %q: partial module returned alongside error", src)
	}
	if !strings.Contains(te.Message, msgPart) {
		t.Errorf("resolve %q: message %q does not contain %q", src, te.Message, msgPart)
	}
}

func TestSetTypeMismatch(t *testing.T) {
	expectTypeError(t, "$ { let x = 1; set x = true; }", "Int")
	expectTypeError(t, "$ { let x = 1; set x = true; }", "Boolean")
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name, src, msg string
	}{
		{"unknown variable", "$ { print y; }", "unknown variable \"y\""},
		{"set undeclared", "$ { set y = 1; }", "undeclared"},
		{"negate bool", "$ { print -true; }", "unary -"},
		{"not int", "$ { print !1; }", "operand of !"},
		{"int and", "$ { print 1 && 2; }", "&& is not defined for Int"},
		{"bool plus", "$ { print true + false; }", "+ is not defined for Boolean"},
		{"mixed arith", "$ { print 1 + true; }", "expects Int on the right"},
		{"mixed logic", "$ { print true || 1; }", "expects Boolean on the right"},
		{"bool in chain", "$ { print 1 < true; }", "comparison operand must be Int"},
		{"bool chain head", "$ { print true == true; }", "comparison operand must be Int"},
		{"assert int", "$ { assert 1; }", "assert condition must be Boolean"},
		{"later function sees no locals", "$ { let x = 1; } $ { print x; }", "unknown variable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTypeError(t, tt.src, tt.msg)
		})
	}
}

func TestPrintAcceptsBothTypes(t *testing.T) {
	mod := mustResolve(t, "$ { print 1; print true; print 1 < 2; }")
	body := mod.Functions[0].Body
	want := []ir.Type{ir.TypeInt, ir.TypeBool, ir.TypeBool}
	for i, st := range body {
		p, ok := st.(*ir.Print)
		if !ok {
			t.Fatalf("stmt %d is %T", i, st)
		}
		if p.Value.Type() != want[i] {
			t.Errorf("stmt %d type %v, want %v", i, p.Value.Type(), want[i])
		}
	}
}

func TestLetAndSetShareIdentifier(t *testing.T) {
	mod := mustResolve(t, "$ { let x = 1; set x = x * 2; print x; }")
	fn := mod.Functions[0]
	decl := fn.Body[0].(*ir.Assign)
	set := fn.Body[1].(*ir.Assign)
	if decl.Target != set.Target {
		t.Errorf("set allocated a new identifier: %v vs %v", decl.Target, set.Target)
	}
	if len(fn.Locals) != 1 || fn.Locals[0].Name != "x" || fn.Locals[0].Type != ir.TypeInt {
		t.Errorf("locals = %+v", fn.Locals)
	}
}

func TestShadowingAllocatesFreshIdentifier(t *testing.T) {
	mod := mustResolve(t, "$ { let x = 1; let x = x < 2; print x; }")
	fn := mod.Functions[0]
	first := fn.Body[0].(*ir.Assign)
	second := fn.Body[1].(*ir.Assign)
	if first.Target == second.Target {
		t.Fatal("shadowing reused the identifier")
	}
	// правая часть второго let ссылается на первый x
	cmp := second.Value.(*ir.ComparisonExpression)
	if v, ok := cmp.Links[0].Left.(*ir.IntVar); !ok || v.ID != first.Target {
		t.Errorf("initializer refers to %#v, want v%d", cmp.Links[0].Left, first.Target)
	}
	pr := fn.Body[2].(*ir.Print)
	if v, ok := pr.Value.(*ir.BoolVar); !ok || v.ID != second.Target {
		t.Errorf("print refers to %#v, want the shadowing binding", pr.Value)
	}
	if ty, _ := fn.TypeOf(second.Target); ty != ir.TypeBool {
		t.Errorf("shadowing binding type = %v", ty)
	}
}

func TestShortCircuitReservesBooleanTemp(t *testing.T) {
	mod := mustResolve(t, "$ { let a = true; print a && false || a; }")
	fn := mod.Functions[0]
	pr := fn.Body[1].(*ir.Print)
	outer, ok := pr.Value.(*ir.ShortCircuit)
	if !ok || outer.Op != ir.LogicOr {
		t.Fatalf("print value = %#v", pr.Value)
	}
	inner, ok := outer.Left.(*ir.ShortCircuit)
	if !ok || inner.Op != ir.LogicAnd {
		t.Fatalf("left = %#v", outer.Left)
	}
	if inner.Result == outer.Result {
		t.Fatal("nested short-circuits share a result slot")
	}
	for _, id := range []ir.VariableID{inner.Result, outer.Result} {
		ty, ok := fn.TypeOf(id)
		if !ok || ty != ir.TypeBool {
			t.Errorf("temp %v: type %v registered=%v", id, ty, ok)
		}
	}
	synthetic := 0
	for _, l := range fn.Locals {
		if l.Synthetic() {
			synthetic++
		}
	}
	if synthetic != 2 {
		t.Errorf("synthetic locals = %d, want 2", synthetic)
	}
}

func TestComparisonChainLinksShareOperands(t *testing.T) {
	mod := mustResolve(t, "$ { let b = 2; print 1 < b <= 3 < 4; }")
	cmp := mod.Functions[0].Body[1].(*ir.Print).Value.(*ir.ComparisonExpression)
	if len(cmp.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(cmp.Links))
	}
	for i := 1; i < len(cmp.Links); i++ {
		if cmp.Links[i].Left != cmp.Links[i-1].Right {
			t.Errorf("link %d left operand is not link %d right operand", i, i-1)
		}
	}
}

func TestIdentifiersUniqueAcrossFunctions(t *testing.T) {
	mod := mustResolve(t, "$ { let x = 1; let y = true && false; print x; } $ { let x = 2; let z = x < 3 || false; let w = !z && z; }")
	seen := map[ir.VariableID]string{}
	total := 0
	for _, fn := range mod.Functions {
		for _, l := range fn.Locals {
			total++
			if prev, dup := seen[l.ID]; dup {
				t.Errorf("identifier %v used by %s and %s", l.ID, prev, fn.Name)
			}
			seen[l.ID] = fn.Name
		}
	}
	if total != 8 {
		t.Errorf("total locals = %d, want 8", total)
	}
}

func TestScopeStackBalanced(t *testing.T) {
	r := sema.NewResolver()
	if _, err := r.ResolveModule(parseModule(t, "$ { let x = 1; } $ { let y = 2; }")); err != nil {
		t.Fatal(err)
	}
	if r.Depth() != 0 {
		t.Errorf("scope depth after module = %d", r.Depth())
	}
	if _, err := r.ResolveModule(parseModule(t, "$ { print nope; }")); err == nil {
		t.Fatal("expected error")
	}
	if r.Depth() != 0 {
		t.Errorf("scope depth after failed module = %d", r.Depth())
	}
}

func TestAssertKeepsMessage(t *testing.T) {
	mod := mustResolve(t, "$ { assert 1 == 2, \"oops\"; assert true; }")
	a := mod.Functions[0].Body[0].(*ir.Assert)
	if !a.HasMessage || a.Message != "oops" {
		t.Errorf("assert = %+v", a)
	}
	if b := mod.Functions[0].Body[1].(*ir.Assert); b.HasMessage {
		t.Errorf("assert without message has one: %+v", b)
	}
}
