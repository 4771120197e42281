package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrBinaryFile is returned when opening a file that looks binary.
	ErrBinaryFile = errors.New("binary file")

	// ErrNoRuleSources is returned by ReloadRules when nothing is configured.
	ErrNoRuleSources = errors.New("no rule files configured")
)

// OperationError records the operation and file that failed.
type OperationError struct {
	Op      string // "open", "save", "load rules"
	Target  string // file path
	Context string
	Err     error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext adds context to the error. Nil-safe.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
