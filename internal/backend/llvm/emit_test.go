package llvm_test

import (
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/backend/llvm"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/mir"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

func emit(t *testing.T, src string, optimize bool) string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.viv", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	tree, err := parser.Parse(file, toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	irMod, err := sema.Resolve(tree)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	m, err := mir.LowerModule(irMod)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if optimize {
		mir.Optimize(m)
	}
	text, err := llvm.EmitModule(m, llvm.Options{SourceFilename: "test.viv"})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return text
}

func requireAll(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("IR missing %q:\n%s", want, text)
		}
	}
}

func TestEmitDeclaresOnlyRuntimePrimitives(t *testing.T) {
	text := emit(t, "$ { print 1; }", false)
	requireAll(t, text,
		"declare i32 @printf(i8*",
		", ...)",
		"declare i32 @fflush(i8*",
		"declare void @abort()",
		"noreturn",
	)
	if n := strings.Count(text, "declare "); n != 3 {
		t.Errorf("declarations = %d, want 3", n)
	}
}

func TestEmitSynthesizesMain(t *testing.T) {
	text := emit(t, "$ { print 1; } $ { print 2; }", false)
	requireAll(t, text, "define i32 @main()", "define i32 @viv.fn0()", "define i32 @viv.fn1()", "ret i32 0")
	first := strings.Index(text, "call i32 @viv.fn0()")
	second := strings.Index(text, "call i32 @viv.fn1()")
	if first < 0 || second < 0 || first > second {
		t.Errorf("main does not call functions in order:\n%s", text)
	}
}

func TestEmitArithmeticWraps(t *testing.T) {
	text := emit(t, "$ { let x = 1; print x + x * x - x / x; print -x; }", false)
	requireAll(t, text, "add i32", "mul i32", "sub i32", "sdiv i32", "sub i32 0,")
	if strings.Contains(text, "nsw") || strings.Contains(text, "nuw") {
		t.Errorf("arithmetic carries overflow flags:\n%s", text)
	}
}

func TestEmitDivisionTrap(t *testing.T) {
	text := emit(t, "$ { let x = 0; print 1 / x; }", false)
	requireAll(t, text,
		"icmp eq i32",
		"-2147483648",
		"runtime error: division by zero",
		"runtime error: integer overflow",
		"call i32 @fflush(i8* null)",
		"call void @abort()",
		"unreachable",
	)
}

func TestEmitComparisonsAndBoolPrint(t *testing.T) {
	text := emit(t, "$ { let a = 1; print a < 2 <= 3 > a >= 0 != 5 == 1; }", false)
	requireAll(t, text, "icmp slt", "icmp sle", "icmp sgt", "icmp sge", "icmp ne", "icmp eq", "and i1", "select i1")
	requireAll(t, text, "c\"true\\00\"", "c\"false\\00\"", "c\"%s\\0A\\00\"")
}

func TestEmitShortCircuitBlocks(t *testing.T) {
	text := emit(t, "$ { let a = true; print a && false; }", false)
	requireAll(t, text, "sc.rhs:", "sc.short:", "sc.end:", "br i1")
}

func TestEmitAllocasInEntryBlock(t *testing.T) {
	text := emit(t, "$ { let a = 1; let b = a < 2 && true; print b; }", false)
	fn := text[strings.Index(text, "define i32 @viv.fn0()"):]
	entry := fn[:strings.Index(fn, "\nbb")]
	if got := strings.Count(fn, "alloca"); got != strings.Count(entry, "alloca") {
		t.Errorf("allocas outside the entry block:\n%s", fn)
	}
	if !strings.Contains(entry, "alloca i32") || !strings.Contains(entry, "alloca i1") {
		t.Errorf("entry block = %s", entry)
	}
}

func TestEmitSharesStringConstants(t *testing.T) {
	text := emit(t, "$ { print 1; print 2; print 3; }", true)
	if n := strings.Count(text, "c\"%d\\0A\\00\""); n != 1 {
		t.Errorf("int template emitted %d times", n)
	}
}
