package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/driver"
	"github.com/vivax3794/viv-script-blog/internal/project"
)

var testCmd = &cobra.Command{
	Use:   "test [flags] [dir|file.viv...]",
	Short: "Run viv-script programs against their # expect: comments",
	Long: `Test compiles and runs every *.viv file in a directory (default: the
project's [test].dir, or ./tests) and compares stdout with the program's
"# expect: <line>" comments. "# expect-abort" marks programs that must
abort and "# expect-error: CODE" programs that must fail to compile.`,
	RunE: runTest,
}

func init() {
	f := testCmd.Flags()
	f.String("backend", "vm", "execution backend (vm|llvm)")
	f.IntP("jobs", "j", 0, "parallel jobs (0 = [test].jobs, then GOMAXPROCS)")
	f.Bool("no-opt", false, "disable MIR optimizations")
	f.Int("max-steps", 10_000_000, "per-test VM step limit (0 = unlimited)")
	f.String("ui", "off", "progress UI (auto|on|off)")
	f.BoolP("verbose", "v", false, "list passing tests too")
}

func runTest(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	backendFlag, _ := flags.GetString("backend")
	jobs, _ := flags.GetInt("jobs")
	noOpt, _ := flags.GetBool("no-opt")
	maxSteps, _ := flags.GetInt("max-steps")
	verbose, _ := flags.GetBool("verbose")
	uiFlag, _ := flags.GetString("ui")
	withUI, err := readUIModeFlag(uiFlag)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, _, err := project.LoadManifest(wd)
	if err != nil {
		return err
	}
	files, err := collectTestFiles(args, manifest)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no test files found")
		return nil
	}

	backend, ok := buildpipeline.ParseBackend(backendFlag)
	if !ok {
		return fmt.Errorf("invalid --backend value %q (expected vm|llvm)", backendFlag)
	}
	if jobs == 0 && manifest != nil {
		jobs = manifest.Config.Test.Jobs
	}
	opts := driver.TestOptions{
		Backend:  backend,
		Jobs:     jobs,
		MaxSteps: maxSteps,
		Build: buildpipeline.Options{
			DisableOptimization: !optimizeEnabled(noOpt, manifest),
		},
	}
	if backend == buildpipeline.BackendLLVM {
		linker := newLinker(cmd, !opts.Build.DisableOptimization, false)
		if err := linker.Available(); err != nil {
			return err
		}
		opts.Linker = linker
	}

	start := time.Now()
	var results []driver.TestResult
	runAll := func(sink buildpipeline.ProgressSink) error {
		o := opts
		o.Build.Progress = sink
		var err error
		results, err = driver.RunTests(cmd.Context(), files, o)
		return err
	}
	if withUI {
		err = runWithUI(fmt.Sprintf("testing %d files", len(files)), files, runAll)
	} else {
		err = runAll(nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, r := range results {
		switch {
		case !r.Passed:
			fmt.Fprintf(out, "%s %s: %s\n", fail("FAIL"), r.Path, r.Reason())
		case verbose:
			fmt.Fprintf(out, "%s %s (%s)\n", pass("PASS"), r.Path, r.Elapsed.Round(time.Millisecond))
		}
	}
	sum := driver.Summarize(results)
	fmt.Fprintf(out, "%d passed, %d failed, %d total in %s\n",
		sum.Passed, sum.Failed, sum.Total, time.Since(start).Round(time.Millisecond))
	if sum.Failed > 0 {
		return exitWith(1)
	}
	return nil
}

// collectTestFiles expands directory arguments; with no arguments the
// project test dir (or ./tests) is used.
func collectTestFiles(args []string, manifest *project.Manifest) ([]string, error) {
	if len(args) == 0 {
		dir := "tests"
		if manifest != nil {
			dir = manifest.TestDir()
		}
		return driver.ListSources(dir)
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(arg) != project.SourceExt {
				return nil, fmt.Errorf("%s is not a %s file", arg, project.SourceExt)
			}
			files = append(files, arg)
			continue
		}
		found, err := driver.ListSources(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
