package detect

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a file could not be analyzed.
type ErrorKind string

const (
	ErrorKindRead  ErrorKind = "read"
	ErrorKindParse ErrorKind = "parse"
)

var (
	// ErrRead indicates the file could not be read (missing, permission denied).
	ErrRead = errors.New("file unreadable")

	// ErrParse indicates the file content could not be parsed.
	ErrParse = errors.New("file unparseable")
)

// ExtractError is returned by gateways when a single file fails.
type ExtractError struct {
	Path string
	Kind ErrorKind
	Err  error
}

// NewReadError wraps err as a read failure for path.
func NewReadError(path string, err error) *ExtractError {
	return &ExtractError{Path: path, Kind: ErrorKindRead, Err: err}
}

// NewParseError wraps err as a parse failure for path.
func NewParseError(path string, err error) *ExtractError {
	return &ExtractError{Path: path, Kind: ErrorKindParse, Err: err}
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *ExtractError) Is(target error) bool {
	switch e.Kind {
	case ErrorKindRead:
		return target == ErrRead
	case ErrorKindParse:
		return target == ErrParse
	}
	return false
}

// failureFor converts a gateway error into a report failure.
// Errors that are not ExtractErrors are classified as read failures.
func failureFor(path string, err error) FileFailure {
	kind := ErrorKindRead
	var extractErr *ExtractError
	if errors.As(err, &extractErr) {
		kind = extractErr.Kind
	}
	return FileFailure{
		FilePath: path,
		Kind:     kind,
		Message:  err.Error(),
	}
}
