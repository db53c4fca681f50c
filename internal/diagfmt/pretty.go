package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/source"
)

// FormatError renders err as a pretty diagnostic.
//
//	main.viv:2:9: error SEM3001: unknown variable "y"
//	  |
//	2 |   print y;
//	  |         ^
func FormatError(w io.Writer, err error, fs *source.FileSet, opts PrettyOpts) {
	Pretty(w, diag.FromError(err), fs, opts)
}

// Pretty renders one diagnostic with its source line and a caret underline.
func Pretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)

	file := (*source.File)(nil)
	if d.HasSpan && fs != nil {
		file = fs.Get(d.Primary.File)
	}
	if file == nil {
		where := "viv"
		if d.Stage != "" {
			where = "viv (" + string(d.Stage) + ")"
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", p.path.Sprint(where), p.sev(d.Severity), p.code.Sprint(d.Code.ID()), p.msg.Sprint(d.Message))
		return
	}

	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(file, opts.PathMode), start.Line, start.Col),
		p.sev(d.Severity), p.code.Sprint(d.Code.ID()), p.msg.Sprint(d.Message))

	gutter := len(strconv.FormatUint(uint64(start.Line), 10))
	blank := strings.Repeat(" ", gutter)
	fmt.Fprintf(w, "%s %s\n", blank, p.gutter.Sprint("|"))

	first := start.Line
	if opts.Context > 0 && uint32(opts.Context) < first {
		first -= uint32(opts.Context)
	} else if opts.Context > 0 {
		first = 1
	}
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(file.GetLine(ln), tab)
		fmt.Fprintf(w, "%*d %s %s\n", gutter, ln, p.gutter.Sprint("|"), text)
	}

	line := file.GetLine(start.Line)
	prefix := prefixRunes(line, int(start.Col)-1)
	pad := runewidth.StringWidth(expandTabs(prefix, tab))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		marked := prefixRunes(line, int(end.Col)-1)[len(prefix):]
		width = max(runewidth.StringWidth(marked), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s %s%s\n", blank, p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(marker))

	for _, n := range d.Notes {
		pos := file.Position(n.Span.Start)
		fmt.Fprintf(w, "%s %s %s %d:%d: %s\n", blank, p.gutter.Sprint("="), p.note.Sprint("note:"), pos.Line, pos.Col, n.Msg)
	}
}

// prefixRunes returns the first n runes of s (all of s if shorter).
func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx]
		}
		i++
	}
	return s
}

func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

func formatPath(f *source.File, mode PathMode) string {
	return f.FormatPath(mode.String())
}

type palette struct {
	path, code, msg, gutter, caret, note *color.Color
	errSev, warnSev, infoSev             *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:    mk(color.Bold),
		code:    mk(color.FgHiBlack),
		msg:     mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgRed, color.Bold),
		note:    mk(color.FgCyan),
		errSev:  mk(color.FgRed, color.Bold),
		warnSev: mk(color.FgYellow, color.Bold),
		infoSev: mk(color.FgCyan),
	}
}

func (p palette) sev(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.errSev.Sprint("error")
	case diag.SevWarning:
		return p.warnSev.Sprint("warning")
	default:
		return p.infoSev.Sprint("info")
	}
}
