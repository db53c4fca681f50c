package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/diagfmt"
	"github.com/vivax3794/viv-script-blog/internal/ir"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/mir"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.viv]",
	Short: "Print the token stream of a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.viv]",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var irCmd = &cobra.Command{
	Use:   "ir [flags] [file.viv]",
	Short: "Print the name-resolved IR of a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIR,
}

var emitCmd = &cobra.Command{
	Use:   "emit [flags] [file.viv]",
	Short: "Print the MIR or LLVM module generated for a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEmit,
}

func init() {
	for _, c := range []*cobra.Command{tokenizeCmd, parseCmd, irCmd} {
		c.Flags().String("format", "pretty", "output format (pretty|json)")
	}
	emitCmd.Flags().Bool("mir", false, "print MIR instead of LLVM IR")
	emitCmd.Flags().Bool("no-opt", false, "disable MIR optimizations")
}

// frontend holds what the first stages produced, each step feeding the next.
type frontend struct {
	fs     *source.FileSet
	file   *source.File
	tokens []token.Token
	ast    *ast.Module
	ir     *ir.Module
}

func loadFrontend(path string) (*frontend, error) {
	fe := &frontend{fs: source.NewFileSet()}
	id, err := fe.fs.Load(path)
	if err != nil {
		return fe, diag.Wrap(diag.StageRead, err)
	}
	fe.file = fe.fs.Get(id)
	return fe, nil
}

func (fe *frontend) tokenize() error {
	toks, err := lexer.Tokenize(fe.file, lexer.Options{})
	if err != nil {
		return diag.Wrap(diag.StageTokenize, err)
	}
	fe.tokens = toks
	return nil
}

func (fe *frontend) parse() error {
	if err := fe.tokenize(); err != nil {
		return err
	}
	mod, err := parser.Parse(fe.file, fe.tokens)
	if err != nil {
		return diag.Wrap(diag.StageParse, err)
	}
	fe.ast = mod
	return nil
}

func (fe *frontend) resolve() error {
	if err := fe.parse(); err != nil {
		return err
	}
	mod, err := sema.Resolve(fe.ast)
	if err != nil {
		return diag.Wrap(diag.StageResolve, err)
	}
	fe.ir = mod
	return nil
}

func formatFlag(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return "", fmt.Errorf("unknown format: %s", format)
	}
	return format, nil
}

// inspect runs the front end up to the stage that step reaches and prints
// the result with render.
func inspect(cmd *cobra.Command, args []string, step func(*frontend) error, render func(io.Writer, *frontend, string) error) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	input, _, err := resolveInput(args)
	if err != nil {
		return err
	}
	fe, err := loadFrontend(input)
	if err == nil {
		err = step(fe)
	}
	if err != nil {
		return reportError(cmd, err, fe.fs)
	}
	return render(cmd.OutOrStdout(), fe, format)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	return inspect(cmd, args, (*frontend).tokenize, func(w io.Writer, fe *frontend, format string) error {
		if format == "json" {
			return diagfmt.FormatTokensJSON(w, fe.tokens, fe.fs)
		}
		return diagfmt.FormatTokensPretty(w, fe.tokens, fe.fs)
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	return inspect(cmd, args, (*frontend).parse, func(w io.Writer, fe *frontend, format string) error {
		if format == "json" {
			return diagfmt.FormatASTJSON(w, fe.ast)
		}
		return diagfmt.FormatASTPretty(w, fe.ast, fe.fs)
	})
}

func runIR(cmd *cobra.Command, args []string) error {
	return inspect(cmd, args, (*frontend).resolve, func(w io.Writer, fe *frontend, format string) error {
		if format == "json" {
			return diagfmt.FormatIRJSON(w, fe.ir)
		}
		return diagfmt.FormatIRPretty(w, fe.ir)
	})
}

func runEmit(cmd *cobra.Command, args []string) error {
	input, manifest, err := resolveInput(args)
	if err != nil {
		return err
	}
	showMIR, _ := cmd.Flags().GetBool("mir")
	noOpt, _ := cmd.Flags().GetBool("no-opt")
	opts := buildpipeline.Options{
		DisableOptimization: !optimizeEnabled(noOpt, manifest),
		SkipEmit:            showMIR,
		Timer:               newTimer(cmd),
	}
	res, err := buildpipeline.BuildFile(cmd.Context(), input, opts)
	if err != nil {
		return reportError(cmd, err, res.FileSet)
	}
	out := cmd.OutOrStdout()
	if showMIR {
		err = mir.DumpModule(out, res.MIR, mir.DumpOptions{Labels: true})
	} else {
		_, err = io.WriteString(out, res.Artifact)
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	return err
}
