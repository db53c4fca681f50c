package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/project"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/toolchain"
	"github.com/vivax3794/viv-script-blog/internal/trace"
	"github.com/vivax3794/viv-script-blog/internal/vm"
)

// ListSources returns the sorted *.viv files directly inside dir.
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != project.SourceExt {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// TestOptions configures RunTests.
type TestOptions struct {
	Backend buildpipeline.Backend
	// Jobs caps parallelism; zero means GOMAXPROCS.
	Jobs int
	// Linker is required for BackendLLVM.
	Linker toolchain.AssembleLinker
	// WorkDir holds per-test artifacts; a temp dir when empty.
	WorkDir string
	Cache   *ArtifactCache
	Build   buildpipeline.Options
	// MaxSteps bounds each VM run.
	MaxSteps int
	// OnResult, if set, is called as each test finishes (from worker
	// goroutines).
	OnResult func(TestResult)
}

// TestResult is the verdict for one program.
type TestResult struct {
	Path     string
	Passed   bool
	Expected Expectation
	Got      string
	ExitCode int
	Aborted  bool
	// Err is a compile or infrastructure failure.
	Err     error
	Elapsed time.Duration
}

// Reason explains a failure in one line.
func (r TestResult) Reason() string {
	switch {
	case r.Passed:
		return ""
	case r.Expected.ErrorCode != "" && r.Err == nil:
		return fmt.Sprintf("expected error %s, compiled fine", r.Expected.ErrorCode)
	case r.Err != nil:
		return r.Err.Error()
	case r.Aborted != r.Expected.Abort:
		if r.Aborted {
			return "unexpected abort"
		}
		return fmt.Sprintf("expected abort, exited with %d", r.ExitCode)
	case !r.Expected.Abort && r.ExitCode != 0:
		return fmt.Sprintf("exit status %d", r.ExitCode)
	default:
		return fmt.Sprintf("output mismatch: want %q, got %q", r.Expected.Stdout(), r.Got)
	}
}

// Summary counts results.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize tallies results.
func Summarize(results []TestResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// RunTests compiles and runs every file, comparing stdout against its
// `# expect:` comments. Results come back in input order. The returned
// error is only for cancellation or setup problems; failing tests are
// reported through the results.
func RunTests(ctx context.Context, files []string, opts TestOptions) ([]TestResult, error) {
	if opts.Backend == "" {
		opts.Backend = buildpipeline.BackendVM
	}
	if opts.Backend == buildpipeline.BackendLLVM && opts.Linker == nil {
		return nil, fmt.Errorf("backend %s needs a toolchain", opts.Backend)
	}
	workDir := opts.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "viv-test-*")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir) //nolint:errcheck
		workDir = dir
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "test", trace.CurrentSpan(ctx)).
		WithExtra("files", fmt.Sprint(len(files))).
		WithExtra("backend", string(opts.Backend))
	ctx = trace.WithSpan(ctx, span)

	results := make([]TestResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := runOne(gctx, path, filepath.Join(workDir, fmt.Sprintf("t%03d", i)), opts)
			results[i] = r
			if opts.OnResult != nil {
				opts.OnResult(r)
			}
			return nil
		})
	}
	err := g.Wait()
	sum := Summarize(results)
	span.End(fmt.Sprintf("%d passed, %d failed", sum.Passed, sum.Failed))
	return results, err
}

func runOne(ctx context.Context, path, workDir string, opts TestOptions) TestResult {
	start := time.Now()
	r := TestResult{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		r.Err = diag.Wrap(diag.StageRead, err)
		r.Elapsed = time.Since(start)
		return r
	}
	r.Expected = expectationsFor(path, content)

	bopts := opts.Build
	bopts.SkipEmit = opts.Backend == buildpipeline.BackendVM
	res, err := buildpipeline.Build(ctx, path, content, bopts)
	if err != nil {
		r.Err = err
		if r.Expected.ErrorCode != "" {
			r.Passed = diag.FromError(err).Code.ID() == r.Expected.ErrorCode
		}
		r.Elapsed = time.Since(start)
		return r
	}

	var stdout bytes.Buffer
	var run buildpipeline.RunResult
	switch opts.Backend {
	case buildpipeline.BackendVM:
		run, err = buildpipeline.Interpret(ctx, res, vm.Options{Stdout: &stdout, MaxSteps: opts.MaxSteps}, bopts)
	default:
		binary := filepath.Join(workDir, "prog")
		if err = buildpipeline.Link(ctx, res, opts.Linker, workDir, binary, bopts); err == nil {
			run, err = buildpipeline.Execute(ctx, binary, &stdout, io.Discard, bopts)
		}
	}
	r.Got = stdout.String()
	r.ExitCode = run.ExitCode
	r.Aborted = run.Aborted
	r.Err = err
	r.Passed = judge(r)
	r.Elapsed = time.Since(start)
	return r
}

func judge(r TestResult) bool {
	if r.Err != nil || r.Expected.ErrorCode != "" {
		return false
	}
	if r.Aborted != r.Expected.Abort {
		return false
	}
	if !r.Expected.Abort && r.ExitCode != 0 {
		return false
	}
	return r.Got == r.Expected.Stdout()
}

// expectationsFor prefers comment trivia and falls back to a line scan
// when the file does not tokenize.
func expectationsFor(path string, content []byte) Expectation {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, content))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return ExpectationsFromText(content)
	}
	return ExpectationsFromTokens(toks)
}

// FormatResult renders one line per test: "PASS path (12ms)" or
// "FAIL path: reason".
func FormatResult(r TestResult) string {
	if r.Passed {
		return fmt.Sprintf("PASS %s (%s)", r.Path, r.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("FAIL %s: %s", r.Path, strings.TrimSpace(r.Reason()))
}
