package domain

import (
	"errors"
	"fmt"
)

// ErrNoMatchesFound is reported when a transform replaced nothing. It is informational.
var ErrNoMatchesFound = errors.New("no nodes matched the hint tag")

// ErrUnsupportedNodeKind is reported for a node whose name matches the tag but whose kind is not a collision volume.
var ErrUnsupportedNodeKind = errors.New("node matches tag but is not a collision volume")

// ErrInvalidSourcePath is returned when the source path is empty or cannot be resolved.
var ErrInvalidSourcePath = errors.New("invalid source path")

// ErrInvalidSceneName is returned when the scene display name is empty.
var ErrInvalidSceneName = errors.New("invalid scene name")

// ErrDirectoryCreateFailed is reported when the output directory could not be created.
var ErrDirectoryCreateFailed = errors.New("directory create failed")

// ErrPackFailed is returned when a node tree cannot be converted to a packed scene.
var ErrPackFailed = errors.New("pack failed")

// ErrWriteFailed is returned when a packed scene cannot be written.
var ErrWriteFailed = errors.New("write failed")

// ErrNilRoot is returned when a component is given no tree.
var ErrNilRoot = errors.New("root node is nil")

// ErrSceneNotFound is returned by stores when nothing was written at a path.
var ErrSceneNotFound = errors.New("scene not found")

// ErrIndexOutOfRange is returned for child indices outside the child list.
var ErrIndexOutOfRange = errors.New("child index out of range")

// Code classifies the cause of a failed step.
type Code int

const (
	CodeOK Code = iota
	CodeFailed
	CodeInvalidParameter
	CodeInvalidData
	CodeAlreadyExists
	CodeFileBadPath
	CodeFileNoPermission
	CodeFileCantWrite
	CodeCantCreate
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeFailed:
		return "failed"
	case CodeInvalidParameter:
		return "invalid parameter"
	case CodeInvalidData:
		return "invalid data"
	case CodeAlreadyExists:
		return "already exists"
	case CodeFileBadPath:
		return "bad path"
	case CodeFileNoPermission:
		return "no permission"
	case CodeFileCantWrite:
		return "can't write"
	case CodeCantCreate:
		return "can't create"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Step names a stage of the persistence adapter.
type Step string

const (
	StepValidate  Step = "validate"
	StepDirectory Step = "directory"
	StepPack      Step = "pack"
	StepWrite     Step = "write"
)

// StepError describes the failure of a single step. errors.Is matches both
// the sentinel in Kind and the underlying cause.
type StepError struct {
	Kind error
	Step Step
	Code Code
	Path string
	Err  error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: %v (%s)", e.Step, e.Kind, e.Code)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// CodeOf returns the code carried by the first StepError in err's chain,
// CodeOK for nil and CodeFailed otherwise.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var se *StepError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeFailed
}
