package vecsnap

import (
	"fmt"

	"github.com/vecsnap/vecsnap/codec"
)

// FormatError and DataError are produced by the codec layer and re-exported
// here so callers can errors.As against a single package.
type (
	// FormatError indicates a malformed or unsupported snapshot encoding.
	FormatError = codec.FormatError
	// DataError indicates invalid snapshot content.
	DataError = codec.DataError
)

// ValidationError indicates a failed precondition: a bad filename, a
// missing adapter, or an attempt to persist an empty index. It is always
// raised before any I/O happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

// ExtractionError indicates that a live label's point could not be
// retrieved from the index while building a snapshot.
//
// The adapter's underlying error can be accessed via errors.Unwrap.
type ExtractionError struct {
	Label uint32
	cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract label %d: %v", e.Label, e.cause)
}

func (e *ExtractionError) Unwrap() error { return e.cause }

// RehydrationError indicates that the index rejected an operation while
// being reconstructed from a snapshot (for example a duplicate label).
// Records inserted before the failure are not rolled back; the adapter is
// left however it was after the last successful insertion.
//
// The adapter's underlying error can be accessed via errors.Unwrap.
type RehydrationError struct {
	// Index is the position of the failing record in file order, or -1
	// if initialization itself failed.
	Index int
	Label uint32
	cause error
}

func (e *RehydrationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("rehydrate: init failed: %v", e.cause)
	}
	return fmt.Sprintf("rehydrate record %d (label %d): %v", e.Index, e.Label, e.cause)
}

func (e *RehydrationError) Unwrap() error { return e.cause }

// IOError wraps an underlying read/write/stat failure with the operation
// and filename it happened on.
type IOError struct {
	Op       string
	Filename string
	cause    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Filename, e.cause)
}

func (e *IOError) Unwrap() error { return e.cause }
