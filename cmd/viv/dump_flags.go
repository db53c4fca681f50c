package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/driver"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

func addDumpFlags(f *pflag.FlagSet) {
	f.Bool("dump-tokens", false, "dump the token stream to stderr")
	f.Bool("dump-ast", false, "dump the syntax tree to stderr")
	f.Bool("dump-ir", false, "dump the resolved IR to stderr")
	f.Bool("dump-mir", false, "dump MIR before and after optimization to stderr")
	f.Bool("dump-llvm", false, "dump the emitted LLVM module to stderr")
	f.String("dump-format", "pretty", "dump format (pretty|json)")
}

func readDumpOptions(cmd *cobra.Command) (buildpipeline.Options, error) {
	f := cmd.Flags()
	var opts buildpipeline.Options
	opts.DumpTokens, _ = f.GetBool("dump-tokens")
	opts.DumpAST, _ = f.GetBool("dump-ast")
	opts.DumpIR, _ = f.GetBool("dump-ir")
	opts.DumpMIR, _ = f.GetBool("dump-mir")
	opts.DumpModule, _ = f.GetBool("dump-llvm")
	format, _ := f.GetString("dump-format")
	switch buildpipeline.DumpFormat(format) {
	case buildpipeline.DumpPretty, buildpipeline.DumpJSON:
		opts.DumpFormat = buildpipeline.DumpFormat(format)
	default:
		return opts, fmt.Errorf("invalid --dump-format value %q (expected pretty|json)", format)
	}
	opts.Dump = cmd.ErrOrStderr()
	return opts, nil
}

func fileSetOf(res *driver.CompileResult) *source.FileSet {
	if res == nil || res.Result == nil {
		return nil
	}
	return res.FileSet
}
