package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/toolchain"
	"github.com/vivax3794/viv-script-blog/internal/vm"
)

// ArtifactName is the file the LLVM module is written to inside workDir.
const ArtifactName = "main.ll"

// RunResult is the outcome of executing a compiled program. A non-zero
// exit is the program's own business and not a pipeline error.
type RunResult struct {
	ExitCode int
	Aborted  bool
}

// Link writes res.Artifact into workDir and hands it to linker.
func Link(ctx context.Context, res *Result, linker toolchain.AssembleLinker, workDir, output string, opts Options) error {
	p := newPipeline(ctx, displayPath(res), opts)
	return p.stage(diag.StageLink, "link", func() error {
		if res == nil || res.Artifact == "" {
			return errors.New("no module artifact to link")
		}
		if err := os.MkdirAll(workDir, 0o750); err != nil {
			return fmt.Errorf("failed to create work dir: %w", err)
		}
		llPath := filepath.Join(workDir, ArtifactName)
		if err := os.WriteFile(llPath, []byte(res.Artifact), 0o600); err != nil {
			return fmt.Errorf("failed to write LLVM IR: %w", err)
		}
		return linker.AssembleAndLink(ctx, llPath, output)
	})
}

// Execute runs a linked binary with the given streams.
func Execute(ctx context.Context, binary string, stdout, stderr io.Writer, opts Options) (RunResult, error) {
	var out RunResult
	p := newPipeline(ctx, binary, opts)
	err := p.stage(diag.StageRun, "run", func() error {
		cmd := exec.CommandContext(ctx, binary)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err := cmd.Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				out.ExitCode = 128 + int(ws.Signal())
				out.Aborted = ws.Signal() == syscall.SIGABRT
			}
			return nil
		}
		return err
	})
	return out, err
}

// Interpret runs res.MIR on the VM. Program aborts are reported through
// the result; interpreter faults come back as a StageRun error.
func Interpret(ctx context.Context, res *Result, vmOpts vm.Options, opts Options) (RunResult, error) {
	var out RunResult
	p := newPipeline(ctx, displayPath(res), opts)
	err := p.stage(diag.StageRun, "run", func() error {
		if res == nil || res.MIR == nil {
			return errors.New("no MIR to interpret")
		}
		r, err := vm.Run(res.MIR, vmOpts)
		out = RunResult{ExitCode: r.ExitCode, Aborted: r.Aborted}
		return err
	})
	return out, err
}

func displayPath(res *Result) string {
	if res == nil || res.File == nil {
		return ""
	}
	return res.File.Path
}
