package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnreadable  = errors.New("store unreadable")
	ErrCorrupt     = errors.New("store corrupt")
	ErrWriteFailed = errors.New("store write failed")
)

// SchemaViolation is a single JSON Schema failure in the stored document.
type SchemaViolation struct {
	Path    string // dotted path, e.g. projects.work.todos[0].task
	Message string
}

func (v SchemaViolation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Error describes a failed store operation. Kind is one of the sentinel
// errors above; Err is the underlying cause, if any.
type Error struct {
	Op         string
	Path       string
	Kind       error
	Err        error
	Violations []SchemaViolation
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Unwrap returns both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
