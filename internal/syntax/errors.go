package syntax

import (
	"errors"
	"fmt"
)

// Errors returned while building rule tables.
var (
	ErrEmptyPattern    = errors.New("empty pattern")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoLanguageName  = errors.New("language has no name")
)

// PatternError reports a rule that could not be compiled.
// It disables highlighting for its language only.
type PatternError struct {
	Language string
	Index    int
	Pattern  string
	Err      error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("syntax: language %q rule %d (%q): %v", e.Language, e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// SourceError reports a rule source (file or script) that could not be read.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("syntax: %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
