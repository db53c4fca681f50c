package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new viv-script project",
	Long: `Initialize a new project by creating a manifest (viv.toml), a
hello-world entry point (main.viv) and a tests/ directory with one
example test. If [path|name] is omitted, initializes the current
directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target, err := initTarget(args)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "viv-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if fileExists(manifestPath) {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	manifest, err := project.EncodeConfig(defaultConfig(name))
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, manifest, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	created := []string{project.ManifestName}
	files := []struct {
		rel     string
		content string
	}{
		{"main.viv", defaultMain},
		{filepath.Join("tests", "hello.viv"), defaultTest},
	}
	for _, f := range files {
		p := filepath.Join(target, f.rel)
		if fileExists(p) {
			created = append(created, f.rel+" (existing)")
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(f.content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.rel, err)
		}
		created = append(created, f.rel)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized viv project in %s\n", rel)
	for _, c := range created {
		fmt.Fprintf(out, "  - %s\n", c)
	}
	return nil
}

func initTarget(args []string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if len(args) == 0 || args[0] == "." {
		return wd, nil
	}
	if filepath.IsAbs(args[0]) {
		return args[0], nil
	}
	return filepath.Join(wd, args[0]), nil
}

func defaultConfig(name string) project.Config {
	return project.Config{
		Package: project.PackageConfig{Name: name},
		Build:   project.BuildConfig{Main: "main.viv"},
		Test:    project.TestConfig{Dir: "tests"},
	}
}

const defaultMain = `# viv-script hello world
$ {
    let answer = 6 * 7;
    print answer;
    print answer == 42;
}
`

const defaultTest = `# expect: 42
# expect: true
$ {
    let answer = 6 * 7;
    print answer;
    print answer == 42;
}
`
