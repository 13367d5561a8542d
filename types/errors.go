package types

import (
	"errors"
	"fmt"
)

type Stage uint8

const (
	StageLoad Stage = iota
	StageDiscretize
	StageBuildMatrix
	StageSolve
	StageReconstruct
)

var stageNames = [...]string{
	StageLoad:        "load",
	StageDiscretize:  "discretize",
	StageBuildMatrix: "build-matrix",
	StageSolve:       "solve",
	StageReconstruct: "reconstruct",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// ErrInvalidSampling is returned for sampling rectangles or resolutions that
// cannot describe a grid.
var ErrInvalidSampling = errors.New("panelflow: invalid sampling configuration")

// FormatError reports a coordinate row that does not carry two numeric fields.
type FormatError struct {
	Line int // 1-based, header included
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("malformed coordinate row at line %d: %q", e.Line, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// GeometryError reports a coordinate loop that cannot be closed, or one that
// is degenerate after closure.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "degenerate geometry: " + e.Reason
}

// SingularMatrixError reports a linear system without a unique solution.
type SingularMatrixError struct {
	N         int
	Condition float64
	Reason    string
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular %dx%d system (condition %.3g): %s",
		e.N, e.N, e.Condition, e.Reason)
}

// NumericDegeneracyError reports a division by zero or a non-finite value.
// I and J are panel indices, -1 when not applicable.
type NumericDegeneracyError struct {
	Stage  Stage
	I, J   int
	X, Y   float64
	Reason string
}

func (e *NumericDegeneracyError) Error() string {
	switch {
	case e.I >= 0 && e.J >= 0:
		return fmt.Sprintf("numeric degeneracy in %s at panels (%d,%d), point (%g,%g): %s",
			e.Stage, e.I, e.J, e.X, e.Y, e.Reason)
	case e.I >= 0:
		return fmt.Sprintf("numeric degeneracy in %s at panel %d, point (%g,%g): %s",
			e.Stage, e.I, e.X, e.Y, e.Reason)
	default:
		return fmt.Sprintf("numeric degeneracy in %s: %s", e.Stage, e.Reason)
	}
}

// StageError tags a failure with the pipeline stage that detected it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func NewStageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
