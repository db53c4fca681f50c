package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.viv]",
	Short: "Compile a viv-script program to a native executable",
	Long: `Build compiles a program to LLVM IR and links it with clang. Without a
file argument the [build].main entry of the nearest viv.toml is built.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringP("output", "o", "", "output executable path")
	f.Bool("no-opt", false, "disable MIR optimizations and build with -O0")
	f.Bool("emit-llvm", false, "write the LLVM module to the output path instead of linking")
	f.Bool("no-cache", false, "bypass the artifact cache")
	f.Bool("show-commands", false, "print toolchain command lines")
	f.String("ui", "off", "progress UI (auto|on|off)")
	addDumpFlags(f)
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, manifest, err := resolveInput(args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	outFlag, _ := flags.GetString("output")
	noOpt, _ := flags.GetBool("no-opt")
	emitLLVM, _ := flags.GetBool("emit-llvm")
	noCache, _ := flags.GetBool("no-cache")
	showCommands, _ := flags.GetBool("show-commands")
	uiFlag, _ := flags.GetString("ui")
	withUI, err := readUIModeFlag(uiFlag)
	if err != nil {
		return err
	}

	opts, err := readDumpOptions(cmd)
	if err != nil {
		return err
	}
	opts.DisableOptimization = !optimizeEnabled(noOpt, manifest)
	opts.Timer = newTimer(cmd)

	ctx := cmd.Context()
	res, err := compile(ctx, input, openCache(cmd, noCache), opts, withUI)
	if err != nil {
		return reportError(cmd, err, fileSetOf(res))
	}

	output := outputPath(outFlag, input, manifest)
	if emitLLVM {
		if outFlag == "" {
			output += ".ll"
		}
		if err := os.WriteFile(output, []byte(res.Artifact), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		printTimings(cmd.ErrOrStderr(), opts.Timer)
		return nil
	}

	workDir, err := os.MkdirTemp("", "viv-build-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir) //nolint:errcheck

	linker := newLinker(cmd, !opts.DisableOptimization, showCommands)
	if err := buildpipeline.Link(ctx, res.Result, linker, workDir, output, opts); err != nil {
		return reportError(cmd, err, res.FileSet)
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	if res.Cached {
		fmt.Fprintf(cmd.ErrOrStderr(), "built %s (cached)\n", filepath.Clean(output))
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "built %s\n", filepath.Clean(output))
	}
	return nil
}
