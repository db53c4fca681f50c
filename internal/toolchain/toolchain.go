// Package toolchain turns an emitted LLVM module into a native executable.
//
// The compiler core never spawns processes itself; it hands the artifact
// path to an AssembleLinker. Clang is the only real implementation.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvClang overrides the clang binary.
const EnvClang = "VIV_CLANG"

// ErrNotFound is returned when neither clang nor llc with a C linker exists.
var ErrNotFound = errors.New("clang not found (nor llc with gcc/cc); install with: sudo apt-get install -y clang llvm")

// fallbackLinkers are tried in order when clang is missing.
var fallbackLinkers = []string{"gcc", "cc"}

// AssembleLinker lowers a module artifact to an object file and links it.
type AssembleLinker interface {
	AssembleAndLink(ctx context.Context, artifactPath, outputPath string) error
}

// CommandRunner executes one external command. Stdout of the command goes
// to the runner's discretion; a failing command returns an error carrying
// its stderr.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Clang assembles with `clang -c -x ir` (falling back to llc) and links
// with clang against the platform C runtime, which provides printf,
// fflush and abort. Without clang it assembles with llc and links with
// the first of gcc/cc on PATH.
type Clang struct {
	// Path of the clang binary. Empty means $VIV_CLANG, then "clang".
	Path     string
	Optimize bool
	// Commands, when set, receives every command line before it runs.
	Commands io.Writer
	// Run defaults to RunCommand.
	Run CommandRunner
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

var _ AssembleLinker = (*Clang)(nil)

func (c *Clang) binary() string {
	if c.Path != "" {
		return c.Path
	}
	if env := os.Getenv(EnvClang); env != "" {
		return env
	}
	return "clang"
}

func (c *Clang) lookPath(name string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(name)
	}
	return exec.LookPath(name)
}

func (c *Clang) run(ctx context.Context, name string, args ...string) error {
	if c.Commands != nil {
		fmt.Fprintf(c.Commands, "%s %s\n", name, strings.Join(args, " "))
	}
	if c.Run != nil {
		return c.Run(ctx, name, args...)
	}
	return RunCommand(ctx, name, args...)
}

// Available reports whether clang, or llc plus a C linker, can be found.
func (c *Clang) Available() error {
	if _, err := c.lookPath(c.binary()); err == nil {
		return nil
	}
	if _, _, err := c.llcPair(); err != nil {
		return err
	}
	return nil
}

// llcPair finds llc and a linker for hosts without clang.
func (c *Clang) llcPair() (llc, linker string, err error) {
	llc, err = c.lookPath("llc")
	if err != nil {
		return "", "", fmt.Errorf("%w (%s)", ErrNotFound, c.binary())
	}
	for _, name := range fallbackLinkers {
		if linker, err = c.lookPath(name); err == nil {
			return llc, linker, nil
		}
	}
	return "", "", fmt.Errorf("%w (%s)", ErrNotFound, c.binary())
}

func (c *Clang) llcArgs(llPath, objPath string) []string {
	return []string{"-filetype=obj", "-relocation-model=pic", "-O=" + strings.TrimPrefix(c.optFlag(), "-O"), llPath, "-o", objPath}
}

func (c *Clang) optFlag() string {
	if c.Optimize {
		return "-O2"
	}
	return "-O0"
}

// AssembleAndLink writes outputPath; the intermediate object file lives
// next to artifactPath and is removed afterwards.
func (c *Clang) AssembleAndLink(ctx context.Context, artifactPath, outputPath string) error {
	objPath := strings.TrimSuffix(artifactPath, filepath.Ext(artifactPath)) + ".o"
	clang, err := c.lookPath(c.binary())
	if err != nil {
		return c.assembleWithoutClang(ctx, artifactPath, objPath, outputPath)
	}
	defer os.Remove(objPath) //nolint:errcheck

	if err := c.assemble(ctx, clang, artifactPath, objPath); err != nil {
		return err
	}
	if err := c.run(ctx, clang, objPath, "-o", outputPath); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}
	return nil
}

// assembleWithoutClang: llc -> .o, затем gcc/cc линкует с libc.
func (c *Clang) assembleWithoutClang(ctx context.Context, artifactPath, objPath, outputPath string) error {
	llc, linker, err := c.llcPair()
	if err != nil {
		return err
	}
	defer os.Remove(objPath) //nolint:errcheck

	if err := c.run(ctx, llc, c.llcArgs(artifactPath, objPath)...); err != nil {
		return fmt.Errorf("llc failed: %w", err)
	}
	if err := c.run(ctx, linker, objPath, "-o", outputPath); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}
	return nil
}

func (c *Clang) assemble(ctx context.Context, clang, llPath, objPath string) error {
	clangErr := c.run(ctx, clang, "-c", "-x", "ir", c.optFlag(), llPath, "-o", objPath)
	if clangErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	llc, llcErr := c.lookPath("llc")
	if llcErr != nil {
		return fmt.Errorf("clang failed and llc not found: %w", clangErr)
	}
	args := c.llcArgs(llPath, objPath)
	if triple := c.hostTriple(ctx, clang); triple != "" {
		args = append([]string{"-mtriple=" + triple}, args...)
	}
	if err := c.run(ctx, llc, args...); err != nil {
		return fmt.Errorf("clang and llc failed: %w", errors.Join(clangErr, err))
	}
	if c.Commands != nil {
		fmt.Fprintln(c.Commands, "note: clang IR compile failed; fell back to llc")
	}
	return nil
}

func (c *Clang) hostTriple(ctx context.Context, clang string) string {
	out, err := exec.CommandContext(ctx, clang, "-dumpmachine").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// RunCommand runs name with args, discarding stdout and returning stderr
// as the error text on failure.
func RunCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		return fmt.Errorf("%s: %s", filepath.Base(name), msg)
	}
	return nil
}
