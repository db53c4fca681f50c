package buildpipeline

import (
	"io"

	"github.com/vivax3794/viv-script-blog/internal/observ"
)

// DumpFormat selects the rendering of debug dumps.
type DumpFormat string

const (
	DumpPretty DumpFormat = "pretty"
	DumpJSON   DumpFormat = "json"
)

// Options control one compilation.
type Options struct {
	// DisableOptimization skips MIR constant folding and CFG simplification
	// and makes the toolchain compile with -O0.
	DisableOptimization bool

	DumpTokens bool
	DumpAST    bool
	DumpIR     bool
	// DumpMIR prints the control-flow graph before and, when enabled,
	// after optimization.
	DumpMIR bool
	// DumpModule prints the emitted LLVM module.
	DumpModule bool
	DumpFormat DumpFormat
	// Dump receives all dumps; os.Stderr when nil.
	Dump io.Writer

	// SkipEmit stops after MIR; used by the VM backend and the REPL.
	SkipEmit bool

	Progress ProgressSink
	Timer    *observ.Timer
}
