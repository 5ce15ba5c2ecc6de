package colour

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates an out-of-range option or an empty source list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFormat indicates a malformed palette file.
	ErrFormat = errors.New("format error")

	// ErrIO indicates a source that could not be opened or read.
	ErrIO = errors.New("io error")

	// ErrCancelled indicates the run was cancelled through its context.
	ErrCancelled = errors.New("cancelled")
)

// SourceError describes a failure attributable to one source.
type SourceError struct {
	// Source is the name of the offending source.
	Source string
	// Kind is one of the Err* sentinels.
	Kind error
	// Line is the 1-based line of a palette file, or 0 when not applicable.
	Line int
	// Err is the underlying cause.
	Err error
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s: line %d: %v", e.Source, e.Kind, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

// Is reports whether target is the error's kind.
func (e *SourceError) Is(target error) bool {
	return target == e.Kind
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewFormatError returns a SourceError of kind ErrFormat.
func NewFormatError(source string, line int, err error) *SourceError {
	return &SourceError{Source: source, Kind: ErrFormat, Line: line, Err: err}
}

// NewIOError returns a SourceError of kind ErrIO.
func NewIOError(source string, err error) *SourceError {
	return &SourceError{Source: source, Kind: ErrIO, Err: err}
}

// cancelled wraps a context error so it matches both ErrCancelled and the
// context's own error.
func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
