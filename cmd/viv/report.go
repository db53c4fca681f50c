package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/diagfmt"
	"github.com/vivax3794/viv-script-blog/internal/observ"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// setupColor resolves --color once and applies it to fatih/color globally.
func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// reportError renders a pipeline error in the --diagnostics format and
// returns the status the command should exit with.
func reportError(cmd *cobra.Command, err error, fs *source.FileSet) error {
	flags := cmd.Root().PersistentFlags()
	format, _ := flags.GetString("diagnostics")
	pathMode, _ := flags.GetString("path-mode")
	out := cmd.ErrOrStderr()
	mode := diagfmt.ParsePathMode(pathMode)
	if fs == nil {
		fs = source.NewFileSet()
	}

	switch format {
	case "json":
		if jerr := diagfmt.FormatErrorJSON(out, err, fs, diagfmt.JSONOpts{PathMode: mode}); jerr != nil {
			return jerr
		}
	case "short":
		fmt.Fprintln(out, diag.FormatShort(diag.FromError(err), fs))
	default:
		diagfmt.FormatError(out, err, fs, diagfmt.PrettyOpts{
			Color:    !color.NoColor,
			PathMode: mode,
			Context:  1,
			TabWidth: 4,
		})
	}
	return exitWith(1)
}

// newTimer returns a timer when --timings is set, nil otherwise.
func newTimer(cmd *cobra.Command) *observ.Timer {
	on, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if !on {
		return nil
	}
	return observ.NewTimer()
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || out == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
