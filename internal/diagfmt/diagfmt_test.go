package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/diagfmt"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

type frontEnd struct {
	fs   *source.FileSet
	toks []token.Token
	mod  *ast.Module
	err  error
}

func compile(t *testing.T, src string) frontEnd {
	t.Helper()
	fe := frontEnd{fs: source.NewFileSet()}
	file := fe.fs.Get(fe.fs.AddVirtual("main.viv", []byte(src)))
	var err error
	if fe.toks, err = lexer.Tokenize(file, lexer.Options{}); err != nil {
		fe.err = diag.Wrap(diag.StageTokenize, err)
		return fe
	}
	if fe.mod, err = parser.Parse(file, fe.toks); err != nil {
		fe.err = diag.Wrap(diag.StageParse, err)
		return fe
	}
	if _, err = sema.Resolve(fe.mod); err != nil {
		fe.err = diag.Wrap(diag.StageResolve, err)
	}
	return fe
}

func TestPrettyErrorWithCaret(t *testing.T) {
	fe := compile(t, "$ {\n  print y;\n}")
	if fe.err == nil {
		t.Fatal("expected resolve error")
	}
	var buf bytes.Buffer
	diagfmt.FormatError(&buf, fe.err, fe.fs, diagfmt.PrettyOpts{})

	want := "main.viv:2:9: error SEM3001: unknown variable \"y\"\n" +
		"  |\n" +
		"2 |   print y;\n" +
		"  |         ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCaretAlignsAfterWideRunes(t *testing.T) {
	fe := compile(t, `$ { assert 1 == 1, "日本"; print z; }`)
	if fe.err == nil {
		t.Fatal("expected resolve error")
	}
	var buf bytes.Buffer
	diagfmt.FormatError(&buf, fe.err, fe.fs, diagfmt.PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "main.viv:1:32:") {
		t.Fatalf("header = %q", lines[0])
	}
	// 19 narrow runes, two wide ones inside quotes, then `"; print `
	if caret := lines[3]; caret != "  | "+strings.Repeat(" ", 33)+"^" {
		t.Fatalf("caret line = %q", caret)
	}
}

func TestParseErrorUnderlinesToken(t *testing.T) {
	fe := compile(t, "$ { let x = ; }")
	var buf bytes.Buffer
	diagfmt.FormatError(&buf, fe.err, fe.fs, diagfmt.PrettyOpts{})
	if !strings.Contains(buf.String(), "error SYN2001: expected expression, got ';'") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestColorToggle(t *testing.T) {
	fe := compile(t, "$ { print q; }")
	var plain, colored bytes.Buffer
	diagfmt.FormatError(&plain, fe.err, fe.fs, diagfmt.PrettyOpts{})
	diagfmt.FormatError(&colored, fe.err, fe.fs, diagfmt.PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("escape codes with color off")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("no escape codes with color on")
	}
}

func TestSpanlessError(t *testing.T) {
	var buf bytes.Buffer
	diagfmt.FormatError(&buf, diag.Wrap(diag.StageLink, errors.New("clang: not found")), nil, diagfmt.PrettyOpts{})
	if got := buf.String(); got != "viv (linking): error TLC5001: clang: not found\n" {
		t.Fatalf("got %q", got)
	}
}

func TestErrorJSON(t *testing.T) {
	fe := compile(t, "$ {\n  set a = 1;\n}")
	var buf bytes.Buffer
	if err := diagfmt.FormatErrorJSON(&buf, fe.err, fe.fs, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SEM3001" || out.Diagnostics[0].Stage != "resolving" {
		t.Fatalf("unexpected %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc == nil || loc.StartLine != 2 || loc.StartCol != 7 {
		t.Fatalf("location = %+v", loc)
	}
}

func TestTokenDumps(t *testing.T) {
	fe := compile(t, "# hi\nprint 5;")
	var pretty bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&pretty, fe.toks, fe.fs); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(pretty.String(), "\n", 2)[0]
	if !strings.Contains(first, "KwPrint") || !strings.Contains(first, "(leading: LineComment)") {
		t.Fatalf("first line = %q", first)
	}

	var js bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&js, fe.toks, fe.fs); err != nil {
		t.Fatal(err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal(js.Bytes(), &toks); err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	if got := strings.Join(kinds, " "); got != "KwPrint IntLit Semicolon EOF" {
		t.Fatalf("kinds = %q", got)
	}
	if toks[1].Line != 2 || toks[1].Col != 7 {
		t.Fatalf("IntLit at %d:%d", toks[1].Line, toks[1].Col)
	}
}

func TestASTDumps(t *testing.T) {
	fe := compile(t, "$ { print 1 + 2; assert a < b <= c; }")
	if fe.mod == nil {
		t.Fatalf("parse failed: %v", fe.err)
	}
	var pretty bytes.Buffer
	if err := diagfmt.FormatASTPretty(&pretty, fe.mod, fe.fs); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"└─ Function fn0", "├─ Print", "Binary +", "Comparison", "Link <=", "Var c"} {
		if !strings.Contains(pretty.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, pretty.String())
		}
	}

	var js bytes.Buffer
	if err := diagfmt.FormatASTJSON(&js, fe.mod); err != nil {
		t.Fatal(err)
	}
	var root diagfmt.ASTNodeOutput
	if err := json.Unmarshal(js.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	cmp := root.Children[0].Children[1].Children[0]
	if cmp.Type != "Comparison" || len(cmp.Children) != 3 {
		t.Fatalf("comparison node = %+v", cmp)
	}
}

func TestIRJSON(t *testing.T) {
	fe := compile(t, "$ { let x = 1; print x > 0 && true; }")
	if fe.err != nil {
		t.Fatal(fe.err)
	}
	mod, err := sema.Resolve(fe.mod)
	if err != nil {
		t.Fatal(err)
	}
	var js bytes.Buffer
	if err := diagfmt.FormatIRJSON(&js, mod); err != nil {
		t.Fatal(err)
	}
	var fns []diagfmt.IRFunctionOutput
	if err := json.Unmarshal(js.Bytes(), &fns); err != nil {
		t.Fatal(err)
	}
	if len(fns) != 1 || len(fns[0].Locals) != 2 || !fns[0].Locals[1].Synthetic {
		t.Fatalf("unexpected %+v", fns)
	}
}
