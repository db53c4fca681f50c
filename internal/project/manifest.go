package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension of viv source files.
const SourceExt = ".viv"

// Manifest is a loaded viv.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors viv.toml:
//
//	[package]
//	name = "hello"
//
//	[build]
//	main = "main.viv"
//	optimize = true
//	output = "hello"
//	backend = "llvm"
//
//	[test]
//	dir = "tests"
//	jobs = 4
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Test    TestConfig    `toml:"test"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Main string `toml:"main"`
	// Optimize is a pointer so an absent key keeps the CLI default.
	Optimize *bool  `toml:"optimize,omitempty"`
	Output   string `toml:"output,omitempty"`
	Backend  string `toml:"backend,omitempty"`
}

type TestConfig struct {
	Dir  string `toml:"dir,omitempty"`
	Jobs int    `toml:"jobs,omitempty"`
}

// LoadManifest finds and decodes viv.toml starting at startDir.
// ok is false when there is no manifest at all.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].main", path)
	}
	switch cfg.Build.Backend {
	case "", "vm", "llvm":
	default:
		return Config{}, fmt.Errorf("%s: [build].backend must be \"vm\" or \"llvm\", got %q", path, cfg.Build.Backend)
	}
	if cfg.Test.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [test].jobs must not be negative", path)
	}
	return cfg, nil
}

// MainPath resolves [build].main against the project root.
func (m *Manifest) MainPath() (string, error) {
	if m == nil {
		return "", errors.New("missing project manifest")
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [build].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [build].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [build].main must be a %s file", m.Path, SourceExt)
	}
	return mainPath, nil
}

// OutputName is [build].output or the package name.
func (m *Manifest) OutputName() string {
	if m.Config.Build.Output != "" {
		return m.Config.Build.Output
	}
	return m.Config.Package.Name
}

// TestDir resolves [test].dir, defaulting to "tests".
func (m *Manifest) TestDir() string {
	dir := m.Config.Test.Dir
	if dir == "" {
		dir = "tests"
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// EncodeConfig renders cfg as TOML, used by `viv init`.
func EncodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
