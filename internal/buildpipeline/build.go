// Package buildpipeline runs the viv compiler stages in order:
// tokenize, parse, resolve, lower (plus optimize), emit; then optionally
// link through a toolchain.AssembleLinker and run the result.
//
// Every stage finishes before the next starts. The first failing stage
// aborts the compilation and its error is returned wrapped in a
// *diag.StageError carrying the stage label.
package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vivax3794/viv-script-blog/internal/ast"
	"github.com/vivax3794/viv-script-blog/internal/backend/llvm"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/diagfmt"
	"github.com/vivax3794/viv-script-blog/internal/ir"
	"github.com/vivax3794/viv-script-blog/internal/lexer"
	"github.com/vivax3794/viv-script-blog/internal/mir"
	"github.com/vivax3794/viv-script-blog/internal/observ"
	"github.com/vivax3794/viv-script-blog/internal/parser"
	"github.com/vivax3794/viv-script-blog/internal/sema"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/token"
	"github.com/vivax3794/viv-script-blog/internal/trace"
)

// Result holds everything the stages produced. Fields are filled in stage
// order, so on failure the earlier ones are still usable (FileSet is
// always set, for error rendering).
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	AST     *ast.Module
	IR      *ir.Module
	MIR     *mir.Module
	// Artifact is the textual LLVM module. Empty with Options.SkipEmit.
	Artifact string
}

// BuildFile reads path from disk and builds it.
func BuildFile(ctx context.Context, path string, opts Options) (*Result, error) {
	res := &Result{FileSet: source.NewFileSet()}
	p := newPipeline(ctx, path, opts)
	err := p.stage(diag.StageRead, "read", func() error {
		id, err := res.FileSet.Load(path)
		if err != nil {
			return err
		}
		res.File = res.FileSet.Get(id)
		return nil
	})
	if err != nil {
		return res, err
	}
	return res, p.compile(res)
}

// Build compiles in-memory source text registered under path.
func Build(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	res := &Result{FileSet: source.NewFileSet()}
	res.File = res.FileSet.Get(res.FileSet.AddVirtual(path, content))
	return res, newPipeline(ctx, path, opts).compile(res)
}

type pipeline struct {
	ctx    context.Context
	file   string
	opts   Options
	tracer trace.Tracer
	parent uint64
	dump   io.Writer
}

func newPipeline(ctx context.Context, file string, opts Options) *pipeline {
	if ctx == nil {
		ctx = context.Background()
	}
	dump := opts.Dump
	if dump == nil {
		dump = os.Stderr
	}
	if opts.DumpFormat == "" {
		opts.DumpFormat = DumpPretty
	}
	return &pipeline{
		ctx:    ctx,
		file:   file,
		opts:   opts,
		tracer: trace.FromContext(ctx),
		parent: trace.CurrentSpan(ctx),
		dump:   dump,
	}
}

func (p *pipeline) emit(stage diag.Stage, status Status, err error, elapsed time.Duration) {
	if p.opts.Progress == nil {
		return
	}
	p.opts.Progress.OnEvent(Event{File: p.file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// stage runs fn as one traced, timed step labelled stage.
func (p *pipeline) stage(stage diag.Stage, name string, fn func() error) error {
	if err := p.ctx.Err(); err != nil {
		return diag.Wrap(stage, err)
	}
	p.emit(stage, StatusWorking, nil, 0)
	span := trace.Begin(p.tracer, trace.ScopePass, name, p.parent).WithExtra("file", p.file)
	err := measure(p.opts.Timer, name, fn)
	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	elapsed := span.End(detail)
	if err != nil {
		err = diag.Wrap(stage, err)
		p.emit(stage, StatusError, err, elapsed)
		return err
	}
	p.emit(stage, StatusDone, nil, elapsed)
	return nil
}

func measure(t *observ.Timer, name string, fn func() error) error {
	if t == nil {
		return fn()
	}
	return t.Measure(name, fn)
}

func (p *pipeline) compile(res *Result) error {
	err := p.stage(diag.StageTokenize, "tokenize", func() error {
		toks, err := lexer.Tokenize(res.File, lexer.Options{})
		if err != nil {
			return err
		}
		res.Tokens = toks
		if p.opts.DumpTokens {
			return p.dumpTokens(res)
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = p.stage(diag.StageParse, "parse", func() error {
		mod, err := parser.Parse(res.File, res.Tokens)
		if err != nil {
			return err
		}
		res.AST = mod
		if p.opts.DumpAST {
			if p.opts.DumpFormat == DumpJSON {
				return diagfmt.FormatASTJSON(p.dump, mod)
			}
			return diagfmt.FormatASTPretty(p.dump, mod, res.FileSet)
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = p.stage(diag.StageResolve, "resolve", func() error {
		mod, err := sema.Resolve(res.AST)
		if err != nil {
			return err
		}
		res.IR = mod
		if p.opts.DumpIR {
			if p.opts.DumpFormat == DumpJSON {
				return diagfmt.FormatIRJSON(p.dump, mod)
			}
			return diagfmt.FormatIRPretty(p.dump, mod)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := p.stage(diag.StageLower, "lower", func() error { return p.lower(res) }); err != nil {
		return err
	}
	if p.opts.SkipEmit {
		return nil
	}

	return p.stage(diag.StageEmit, "emit", func() error {
		text, err := llvm.EmitModule(res.MIR, llvm.Options{SourceFilename: p.file})
		if err != nil {
			return err
		}
		res.Artifact = text
		if p.opts.DumpModule {
			_, err = io.WriteString(p.dump, text)
			return err
		}
		return nil
	})
}

func (p *pipeline) lower(res *Result) error {
	mod, err := mir.LowerModule(res.IR)
	if err != nil {
		return err
	}
	if p.opts.DumpMIR {
		if err := p.dumpMIR("unoptimized", mod); err != nil {
			return err
		}
	}
	if !p.opts.DisableOptimization {
		span := trace.Begin(p.tracer, trace.ScopePass, "optimize", p.parent)
		mir.Optimize(mod)
		span.End("")
		if p.opts.DumpMIR {
			if err := p.dumpMIR("optimized", mod); err != nil {
				return err
			}
		}
	}
	if err := mir.Validate(mod); err != nil {
		return fmt.Errorf("invalid MIR: %w", err)
	}
	res.MIR = mod
	return nil
}

func (p *pipeline) dumpTokens(res *Result) error {
	if p.opts.DumpFormat == DumpJSON {
		return diagfmt.FormatTokensJSON(p.dump, res.Tokens, res.FileSet)
	}
	return diagfmt.FormatTokensPretty(p.dump, res.Tokens, res.FileSet)
}

func (p *pipeline) dumpMIR(label string, mod *mir.Module) error {
	if _, err := fmt.Fprintf(p.dump, "== MIR (%s) ==\n", label); err != nil {
		return err
	}
	return mir.DumpModule(p.dump, mod, mir.DumpOptions{Labels: true})
}
