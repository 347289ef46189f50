package codec

import "fmt"

// FormatError indicates a malformed or structurally invalid snapshot
// encoding: unsupported version, truncated header, size mismatch,
// out-of-range dimensions or counts, unexpected end of stream.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Codec  string
	Offset int64 // byte offset for the binary codec, -1 when not applicable
	Msg    string
	cause  error
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset %d)", e.Codec, e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Codec, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.cause }

// DataError indicates invalid snapshot content: a vector length mismatch,
// a non-finite vector component, or an invalid (non-numeric) label.
//
// Record and Dim name the offending record/dimension index, -1 when not
// applicable.
type DataError struct {
	Codec  string
	Record int
	Dim    int
	Msg    string
	cause  error
}

func (e *DataError) Error() string {
	switch {
	case e.Record >= 0 && e.Dim >= 0:
		return fmt.Sprintf("%s: record %d dim %d: %s", e.Codec, e.Record, e.Dim, e.Msg)
	case e.Record >= 0:
		return fmt.Sprintf("%s: record %d: %s", e.Codec, e.Record, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Codec, e.Msg)
	}
}

func (e *DataError) Unwrap() error { return e.cause }

func formatErr(codec string, offset int64, format string, args ...any) *FormatError {
	return &FormatError{Codec: codec, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func dataErr(codec string, record, dim int, format string, args ...any) *DataError {
	return &DataError{Codec: codec, Record: record, Dim: dim, Msg: fmt.Sprintf(format, args...)}
}
