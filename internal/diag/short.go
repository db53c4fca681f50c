package diag

import (
	"fmt"
	"strings"

	"github.com/vivax3794/viv-script-blog/internal/source"
)

// FormatShort renders d on one line:
//
//	error SEM3001 main.viv:2:7 unknown variable "x"
//
// Diagnostics without a span drop the position and show the stage instead.
func FormatShort(d Diagnostic, fs *source.FileSet) string {
	msg := sanitizeMessage(d.Message)
	if d.HasSpan && fs != nil {
		if file := fs.Get(d.Primary.File); file != nil {
			pos := file.Position(d.Primary.Start)
			return fmt.Sprintf("%s %s %s:%d:%d %s",
				severityLabel(d.Severity), d.Code.ID(), file.FormatPath("auto"), pos.Line, pos.Col, msg)
		}
	}
	if d.Stage != "" {
		return fmt.Sprintf("%s %s (%s) %s", severityLabel(d.Severity), d.Code.ID(), d.Stage, msg)
	}
	return fmt.Sprintf("%s %s %s", severityLabel(d.Severity), d.Code.ID(), msg)
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
