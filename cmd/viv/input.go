package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/project"
)

// resolveInput picks the source file: the explicit argument, else
// [build].main of the nearest viv.toml. The manifest is returned whenever
// one was found so commands can read their defaults from it.
func resolveInput(args []string) (string, *project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	manifest, _, err := project.LoadManifest(wd)
	if err != nil {
		return "", nil, err
	}
	if len(args) > 0 && args[0] != "" {
		return args[0], manifest, nil
	}
	if manifest == nil {
		return "", nil, fmt.Errorf("no input file and no %s found", project.ManifestName)
	}
	mainPath, err := manifest.MainPath()
	if err != nil {
		return "", nil, err
	}
	return mainPath, manifest, nil
}

// resolveBackend: flag, then manifest, then the pipeline default.
func resolveBackend(flag string, manifest *project.Manifest) (buildpipeline.Backend, error) {
	value := strings.TrimSpace(flag)
	if value == "" && manifest != nil {
		value = manifest.Config.Build.Backend
	}
	backend, ok := buildpipeline.ParseBackend(value)
	if !ok {
		return "", fmt.Errorf("invalid --backend value %q (expected vm|llvm)", flag)
	}
	return backend, nil
}

// optimizeEnabled folds --no-opt with [build].optimize.
func optimizeEnabled(noOpt bool, manifest *project.Manifest) bool {
	if noOpt {
		return false
	}
	if manifest != nil && manifest.Config.Build.Optimize != nil {
		return *manifest.Config.Build.Optimize
	}
	return true
}

// outputPath is -o, else the manifest output name, else the source
// basename without extension.
func outputPath(flag, input string, manifest *project.Manifest) string {
	if flag != "" {
		return flag
	}
	if manifest != nil {
		return filepath.Join(manifest.Root, manifest.OutputName())
	}
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == base {
		return "a.out"
	}
	return name
}

func readUIModeFlag(value string) (bool, error) {
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	return shouldUseTUI(mode), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
