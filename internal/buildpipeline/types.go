package buildpipeline

import (
	"time"

	"github.com/vivax3794/viv-script-blog/internal/diag"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file through one stage.
type Event struct {
	File    string
	Stage   diag.Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Backend selects how a built module is executed.
type Backend string

const (
	// BackendVM interprets the MIR directly.
	BackendVM Backend = "vm"
	// BackendLLVM emits LLVM IR and links a native binary.
	BackendLLVM Backend = "llvm"
)

// ParseBackend validates a --backend flag value.
func ParseBackend(s string) (Backend, bool) {
	switch Backend(s) {
	case BackendVM, BackendLLVM:
		return Backend(s), true
	case "":
		return BackendLLVM, true
	}
	return "", false
}
