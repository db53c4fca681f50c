package main

import (
	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.viv]",
	Short: "Compile and run a viv-script program",
	Long: `Run builds a program and executes it. With --backend=vm the MIR is
interpreted in-process; with --backend=llvm a native binary is linked into
a temporary directory and executed. The program's exit status becomes
viv's exit status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.String("backend", "", "execution backend (vm|llvm); defaults to [build].backend, then llvm")
	f.Bool("no-opt", false, "disable MIR optimizations")
	f.Bool("vm-trace", false, "trace every VM instruction to stderr")
	f.Int("max-steps", 0, "abort the VM after this many steps (0 = unlimited)")
	f.Bool("no-cache", false, "bypass the artifact cache")
	f.Bool("show-commands", false, "print toolchain command lines")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, manifest, err := resolveInput(args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	backendFlag, _ := flags.GetString("backend")
	noOpt, _ := flags.GetBool("no-opt")
	vmTrace, _ := flags.GetBool("vm-trace")
	maxSteps, _ := flags.GetInt("max-steps")
	noCache, _ := flags.GetBool("no-cache")
	showCommands, _ := flags.GetBool("show-commands")

	backend, err := resolveBackend(backendFlag, manifest)
	if err != nil {
		return err
	}
	opts := buildpipeline.Options{
		DisableOptimization: !optimizeEnabled(noOpt, manifest),
		Timer:               newTimer(cmd),
	}
	ctx := cmd.Context()

	var run buildpipeline.RunResult
	switch backend {
	case buildpipeline.BackendVM:
		opts.SkipEmit = true
		res, err := buildpipeline.BuildFile(ctx, input, opts)
		if err != nil {
			return reportError(cmd, err, res.FileSet)
		}
		vmOpts := vm.Options{Stdout: cmd.OutOrStdout(), MaxSteps: maxSteps}
		if vmTrace {
			vmOpts.Trace = vm.NewTracer(cmd.ErrOrStderr())
		}
		run, err = buildpipeline.Interpret(ctx, res, vmOpts, opts)
		if err != nil {
			return reportError(cmd, err, res.FileSet)
		}
	default:
		res, err := compile(ctx, input, openCache(cmd, noCache), opts, false)
		if err != nil {
			return reportError(cmd, err, fileSetOf(res))
		}
		binary, cleanup, err := linkTemp(ctx, res.Result, newLinker(cmd, !opts.DisableOptimization, showCommands), opts)
		if err != nil {
			return reportError(cmd, err, res.FileSet)
		}
		defer cleanup()
		run, err = buildpipeline.Execute(ctx, binary, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		if err != nil {
			return reportError(cmd, err, res.FileSet)
		}
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	return exitWith(run.ExitCode)
}
