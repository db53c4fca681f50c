package version_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/vivax3794/viv-script-blog/internal/version"
)

func TestDescribe(t *testing.T) {
	origVersion, origCommit, origDate := version.Version, version.GitCommit, version.BuildDate
	t.Cleanup(func() {
		version.Version, version.GitCommit, version.BuildDate = origVersion, origCommit, origDate
	})

	version.Version = "1.2.3"
	version.GitCommit = "abc123def4567890"
	version.BuildDate = "2024-01-15T10:30:00Z"

	if got := version.Describe(false); got != "viv 1.2.3 (abc123def456) built 2024-01-15T10:30:00Z" {
		t.Fatalf("Describe = %q", got)
	}

	version.GitCommit, version.BuildDate = "", ""
	if got := version.Describe(false); got != "viv 1.2.3" {
		t.Fatalf("Describe = %q", got)
	}
}

func TestPrettyKeepsSuffix(t *testing.T) {
	origVersion, origNoColor := version.Version, color.NoColor
	t.Cleanup(func() { version.Version, color.NoColor = origVersion, origNoColor })

	color.NoColor = true
	version.Version = "0.4.1-rc1"
	if got := version.Pretty(); got != "0.4.1-rc1" {
		t.Fatalf("Pretty = %q", got)
	}
	color.NoColor = false
	if got := version.Pretty(); !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("Pretty = %q", got)
	}

	version.Version = "nightly"
	if version.Pretty() != "nightly" {
		t.Fatal("non-semver version must pass through")
	}
}
