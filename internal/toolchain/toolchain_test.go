package toolchain_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/toolchain"
)

type recorder struct {
	calls [][]string
	fail  map[string]error
}

func (r *recorder) run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.fail[name]
}

func fakeLookPath(known ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, k := range known {
			if k == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestClangAssemblesThenLinks(t *testing.T) {
	rec := &recorder{}
	var cmds bytes.Buffer
	c := &toolchain.Clang{Path: "clang", Optimize: true, Run: rec.run, LookPath: fakeLookPath("clang"), Commands: &cmds}

	if err := c.AssembleAndLink(context.Background(), "/tmp/x/main.ll", "/tmp/x/main"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v", rec.calls)
	}
	if got := strings.Join(rec.calls[0], " "); got != "/usr/bin/clang -c -x ir -O2 /tmp/x/main.ll -o /tmp/x/main.o" {
		t.Fatalf("assemble = %q", got)
	}
	if got := strings.Join(rec.calls[1], " "); got != "/usr/bin/clang /tmp/x/main.o -o /tmp/x/main" {
		t.Fatalf("link = %q", got)
	}
	if strings.Count(cmds.String(), "\n") != 2 {
		t.Fatalf("printed commands = %q", cmds.String())
	}
}

func TestClangUnoptimizedUsesO0(t *testing.T) {
	rec := &recorder{}
	c := &toolchain.Clang{Path: "clang", Run: rec.run, LookPath: fakeLookPath("clang")}
	if err := c.AssembleAndLink(context.Background(), "a.ll", "a"); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0][4] != "-O0" {
		t.Fatalf("assemble = %v", rec.calls[0])
	}
}

func TestFallsBackToLLC(t *testing.T) {
	rec := &recorder{fail: map[string]error{}}
	c := &toolchain.Clang{Path: "clang", Run: func(ctx context.Context, name string, args ...string) error {
		err := rec.run(ctx, name, args...)
		if name == "/usr/bin/clang" && len(args) > 0 && args[0] == "-c" {
			return errors.New("clang: unknown IR")
		}
		return err
	}, LookPath: fakeLookPath("clang", "llc")}

	if err := c.AssembleAndLink(context.Background(), "a.ll", "a"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 3 || rec.calls[1][0] != "/usr/bin/llc" {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestMissingClang(t *testing.T) {
	c := &toolchain.Clang{Path: "clang-404", LookPath: fakeLookPath()}
	err := c.AssembleAndLink(context.Background(), "a.ll", "a")
	if !errors.Is(err, toolchain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(c.Available(), toolchain.ErrNotFound) {
		t.Fatal("Available should fail")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(toolchain.EnvClang, "clang-18")
	c := &toolchain.Clang{LookPath: fakeLookPath("clang-18"), Run: (&recorder{}).run}
	if err := c.Available(); err != nil {
		t.Fatalf("VIV_CLANG ignored: %v", err)
	}
}

func TestWithoutClangUsesLLCAndGCC(t *testing.T) {
	rec := &recorder{}
	c := &toolchain.Clang{Optimize: true, Run: rec.run, LookPath: fakeLookPath("llc", "gcc")}

	if err := c.Available(); err != nil {
		t.Fatalf("Available = %v", err)
	}
	if err := c.AssembleAndLink(context.Background(), "/tmp/x/main.ll", "/tmp/x/main"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v", rec.calls)
	}
	if got := strings.Join(rec.calls[0], " "); got != "/usr/bin/llc -filetype=obj -relocation-model=pic -O=2 /tmp/x/main.ll -o /tmp/x/main.o" {
		t.Fatalf("assemble = %q", got)
	}
	if got := strings.Join(rec.calls[1], " "); got != "/usr/bin/gcc /tmp/x/main.o -o /tmp/x/main" {
		t.Fatalf("link = %q", got)
	}
}

func TestWithoutClangFallsThroughToCC(t *testing.T) {
	rec := &recorder{}
	c := &toolchain.Clang{Run: rec.run, LookPath: fakeLookPath("llc", "cc")}
	if err := c.AssembleAndLink(context.Background(), "a.ll", "a"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 2 || rec.calls[1][0] != "/usr/bin/cc" {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestLLCWithoutLinker(t *testing.T) {
	rec := &recorder{}
	c := &toolchain.Clang{Run: rec.run, LookPath: fakeLookPath("llc")}
	err := c.AssembleAndLink(context.Background(), "a.ll", "a")
	if !errors.Is(err, toolchain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("nothing should run: %v", rec.calls)
	}
	if !errors.Is(c.Available(), toolchain.ErrNotFound) {
		t.Fatal("Available should fail")
	}
}
