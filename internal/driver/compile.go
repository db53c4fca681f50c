package driver

import (
	"context"
	"os"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/project"
	"github.com/vivax3794/viv-script-blog/internal/source"
	"github.com/vivax3794/viv-script-blog/internal/trace"
)

// CompileResult is a built LLVM module, possibly served from the cache.
type CompileResult struct {
	*buildpipeline.Result
	Key    project.Digest
	Cached bool
}

// CompileFile builds path down to an LLVM module. With a non-nil cache the
// artifact is looked up by source digest first; a hit skips every stage
// and leaves only FileSet, File and Artifact set. Requested dumps always
// force a full build.
func CompileFile(ctx context.Context, path string, cache *ArtifactCache, opts buildpipeline.Options) (*CompileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return &CompileResult{Result: &buildpipeline.Result{FileSet: source.NewFileSet()}}, diag.Wrap(diag.StageRead, err)
	}
	key := ArtifactKey(project.DigestBytes(content), path, !opts.DisableOptimization)
	useCache := cache != nil && !wantsDumps(opts)

	if useCache {
		payload, ok, err := cache.Get(key)
		if err == nil && ok {
			trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "cache", "hit", trace.CurrentSpan(ctx))
			fs := source.NewFileSet()
			res := &buildpipeline.Result{FileSet: fs, Artifact: payload.Artifact}
			res.File = fs.Get(fs.AddVirtual(path, content))
			return &CompileResult{Result: res, Key: key, Cached: true}, nil
		}
	}

	res, err := buildpipeline.Build(ctx, path, content, opts)
	out := &CompileResult{Result: res, Key: key}
	if err != nil {
		return out, err
	}
	if useCache {
		// промах кеша не должен ломать сборку
		_ = cache.Put(key, &ArtifactPayload{
			SourcePath: path,
			SourceHash: project.DigestBytes(content),
			Optimized:  !opts.DisableOptimization,
			Artifact:   res.Artifact,
		})
	}
	return out, nil
}

func wantsDumps(opts buildpipeline.Options) bool {
	return opts.DumpTokens || opts.DumpAST || opts.DumpIR || opts.DumpMIR || opts.DumpModule || opts.SkipEmit
}
