package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/driver"
	"github.com/vivax3794/viv-script-blog/internal/toolchain"
)

const cacheApp = "viv"

// openCache returns nil, and so disables caching, when the cache directory
// cannot be created.
func openCache(cmd *cobra.Command, disabled bool) *driver.ArtifactCache {
	if disabled {
		return nil
	}
	cache, err := driver.OpenArtifactCache(cacheApp)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "viv: warning: artifact cache disabled: %v\n", err)
		return nil
	}
	return cache
}

// compile runs the front end and emitter, under the progress UI when asked.
func compile(ctx context.Context, path string, cache *driver.ArtifactCache, opts buildpipeline.Options, withUI bool) (*driver.CompileResult, error) {
	if !withUI {
		return driver.CompileFile(ctx, path, cache, opts)
	}
	var res *driver.CompileResult
	err := runWithUI("building "+filepath.Base(path), []string{path}, func(sink buildpipeline.ProgressSink) error {
		uiOpts := opts
		uiOpts.Progress = sink
		var err error
		res, err = driver.CompileFile(ctx, path, cache, uiOpts)
		return err
	})
	return res, err
}

func newLinker(cmd *cobra.Command, optimize, showCommands bool) *toolchain.Clang {
	linker := &toolchain.Clang{Optimize: optimize}
	if showCommands {
		linker.Commands = cmd.ErrOrStderr()
	}
	return linker
}

// linkTemp links res into a fresh temporary directory and returns the
// binary path together with a cleanup.
func linkTemp(ctx context.Context, res *buildpipeline.Result, linker toolchain.AssembleLinker, opts buildpipeline.Options) (string, func(), error) {
	dir, err := os.MkdirTemp("", "viv-run-*")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	binary := filepath.Join(dir, "prog")
	if err := buildpipeline.Link(ctx, res, linker, dir, binary, opts); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return binary, cleanup, nil
}
