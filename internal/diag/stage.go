package diag

import (
	"errors"
	"fmt"
)

// Stage labels the pipeline step an error came from.
type Stage string

const (
	StageRead     Stage = "reading source"
	StageTokenize Stage = "tokenizing"
	StageParse    Stage = "parsing"
	StageResolve  Stage = "resolving"
	StageLower    Stage = "lowering"
	StageEmit     Stage = "emitting"
	StageLink     Stage = "linking"
	StageRun      Stage = "running"
)

// StageError wraps the first failure of a compilation with the stage label.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("error while %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Wrap labels err with stage. It returns nil for a nil err and leaves an
// already labelled error alone.
func Wrap(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage recorded in err, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
