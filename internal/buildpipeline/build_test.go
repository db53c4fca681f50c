package buildpipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/observ"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/toolchain"
	"github.com/vivax3794/viv-script-blog/internal/trace"
	"github.com/vivax3794/viv-script-blog/internal/vm"
)

func build(t *testing.T, src string, opts buildpipeline.Options) (*buildpipeline.Result, error) {
	t.Helper()
	return buildpipeline.Build(context.Background(), "main.viv", []byte(src), opts)
}

func interpret(t *testing.T, src string, opts buildpipeline.Options) (string, buildpipeline.RunResult) {
	t.Helper()
	opts.SkipEmit = true
	res, err := build(t, src, opts)
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	var out bytes.Buffer
	run, err := buildpipeline.Interpret(context.Background(), res, vm.Options{Stdout: &out}, opts)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	return out.String(), run
}

func TestEndToEndArithmetic(t *testing.T) {
	for _, optimize := range []bool{true, false} {
		opts := buildpipeline.Options{DisableOptimization: !optimize}
		if out, _ := interpret(t, "$ { print 1+2*3; }", opts); out != "7\n" {
			t.Fatalf("1+2*3 printed %q", out)
		}
		if out, _ := interpret(t, "$ { print 7/2; }", opts); out != "3\n" {
			t.Fatalf("7/2 printed %q", out)
		}
	}
}

func TestAssertOutcome(t *testing.T) {
	out, run := interpret(t, `$ { assert 1==2, "oops"; print 5; }`, buildpipeline.Options{})
	if !strings.Contains(out, "oops") || !run.Aborted || run.ExitCode == 0 {
		t.Fatalf("out=%q run=%+v", out, run)
	}
	if strings.Contains(out, "5") {
		t.Fatalf("execution continued after abort: %q", out)
	}

	out, run = interpret(t, `$ { assert 1==1; print 5; }`, buildpipeline.Options{})
	if out != "5\n" || run.Aborted || run.ExitCode != 0 {
		t.Fatalf("out=%q run=%+v", out, run)
	}
}

func TestShortCircuitLaw(t *testing.T) {
	// the right operand divides by zero, so evaluating it aborts
	cases := []string{
		"$ { let c = 0; print false && 1/c == 1; print c; }",
		"$ { let c = 0; print true || 1/c == 1; print c; }",
	}
	want := []string{"false\n0\n", "true\n0\n"}
	for i, src := range cases {
		for _, optimize := range []bool{true, false} {
			out, run := interpret(t, src, buildpipeline.Options{DisableOptimization: !optimize})
			if out != want[i] || run.Aborted {
				t.Fatalf("%q (opt=%v): out=%q run=%+v", src, optimize, out, run)
			}
		}
	}
}

func TestStageLabels(t *testing.T) {
	cases := []struct {
		src   string
		stage diag.Stage
		check func(error) bool
	}{
		{"$ { print 1 ~ 2; }", diag.StageTokenize, func(err error) bool {
			var e *lexer.TokenizerError
			return errors.As(err, &e)
		}},
		{"$ { print 1 }", diag.StageParse, func(err error) bool {
			var e *parser.ParsingError
			return errors.As(err, &e)
		}},
		{"$ { let x = 1; set x = true; }", diag.StageResolve, func(err error) bool {
			var e *sema.TypeError
			return errors.As(err, &e)
		}},
	}
	for _, tc := range cases {
		res, err := build(t, tc.src, buildpipeline.Options{})
		if err == nil {
			t.Fatalf("%q: expected failure", tc.src)
		}
		if stage, _ := diag.StageOf(err); stage != tc.stage {
			t.Fatalf("%q: stage %q, want %q", tc.src, stage, tc.stage)
		}
		if !tc.check(err) {
			t.Fatalf("%q: wrong error kind %T", tc.src, errors.Unwrap(err))
		}
		if res.MIR != nil || res.Artifact != "" {
			t.Fatalf("%q: later stages ran after failure", tc.src)
		}
		if !strings.HasPrefix(err.Error(), "error while "+string(tc.stage)+":") {
			t.Fatalf("%q: message %q", tc.src, err.Error())
		}
	}
}

func TestBuildFileMissing(t *testing.T) {
	_, err := buildpipeline.BuildFile(context.Background(), filepath.Join(t.TempDir(), "nope.viv"), buildpipeline.Options{})
	if stage, _ := diag.StageOf(err); stage != diag.StageRead {
		t.Fatalf("err = %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := buildpipeline.Build(ctx, "main.viv", []byte("$ { print 1; }"), buildpipeline.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestDumps(t *testing.T) {
	var dump bytes.Buffer
	res, err := build(t, "$ { print 2*3; }", buildpipeline.Options{
		DumpTokens: true, DumpAST: true, DumpIR: true, DumpMIR: true, DumpModule: true,
		Dump: &dump,
	})
	if err != nil {
		t.Fatal(err)
	}
	text := dump.String()
	for _, want := range []string{"KwPrint", "└─ Function fn0", "fn fn0:", "== MIR (unoptimized) ==", "== MIR (optimized) ==", "define i32 @main()"} {
		if !strings.Contains(text, want) {
			t.Fatalf("dump missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(res.Artifact, "declare i32 @printf(") {
		t.Fatalf("artifact:\n%s", res.Artifact)
	}
}

func TestProgressTimingsAndTrace(t *testing.T) {
	var events []buildpipeline.Event
	sink := buildpipeline.SinkFunc(func(e buildpipeline.Event) { events = append(events, e) })
	timer := observ.NewTimer()
	var traceOut bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&traceOut, trace.LevelPhase, trace.FormatText))

	if _, err := buildpipeline.Build(ctx, "main.viv", []byte("$ { print 1; }"), buildpipeline.Options{Progress: sink, Timer: timer}); err != nil {
		t.Fatal(err)
	}
	var done []string
	for _, e := range events {
		if e.Status == buildpipeline.StatusDone {
			done = append(done, string(e.Stage))
		}
	}
	if got := strings.Join(done, ","); got != "tokenizing,parsing,resolving,lowering,emitting" {
		t.Fatalf("done stages = %q", got)
	}
	for _, name := range []string{"tokenize", "parse", "resolve", "lower", "emit"} {
		if _, ok := timer.Duration(name); !ok {
			t.Fatalf("no timing for %s", name)
		}
		if !strings.Contains(traceOut.String(), "→ "+name) {
			t.Fatalf("no span for %s in:\n%s", name, traceOut.String())
		}
	}
}

func TestNativeSmoke(t *testing.T) {
	if _, err := exec.LookPath("clang"); err != nil {
		t.Skip("clang not installed")
	}
	if testing.Short() {
		t.Skip("native build in -short mode")
	}
	ctx := context.Background()
	res, err := build(t, `$ { print 1+2*3; print 7/2; print 1 < 2 < 3; }
$ { assert 1 == 2, "oops"; }`, buildpipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "main")
	if err := buildpipeline.Link(ctx, res, &toolchain.Clang{}, dir, bin, buildpipeline.Options{}); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	run, err := buildpipeline.Execute(ctx, bin, &stdout, &stderr, buildpipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "7\n3\ntrue\nassertion failed: oops\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !run.Aborted || run.ExitCode != vm.AbortExitCode {
		t.Fatalf("run = %+v", run)
	}
}
