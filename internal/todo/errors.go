package todo

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProtectedProject = errors.New("project is protected")
	ErrIndexOutOfRange  = errors.New("todo number out of range")
	ErrAlreadyCompleted = errors.New("todo already completed")
	ErrEmptyTask        = errors.New("task is empty")
	ErrInvalidName      = errors.New("project name has no usable characters")
)

// ProjectError reports a failure tied to a project ID.
type ProjectError struct {
	ID  string
	Err error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.ID)
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// PositionError reports a 1-based todo position outside [1, Len].
type PositionError struct {
	Position int
	Len      int
}

func (e *PositionError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("%s: %d (project has no todos)", ErrIndexOutOfRange, e.Position)
	}
	return fmt.Sprintf("%s: %d (valid range 1-%d)", ErrIndexOutOfRange, e.Position, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *PositionError) Unwrap() error {
	return ErrIndexOutOfRange
}
