package vecsnap

import (
	"strings"
)

// validateFilename rejects empty or whitespace-only destination names.
func validateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Msg: "filename must not be empty"}
	}
	return nil
}

// validateAdapter rejects a missing adapter. The operation set itself is
// checked at compile time by the IndexAdapter interface.
func validateAdapter(adapter IndexAdapter) error {
	if adapter == nil {
		return &ValidationError{Msg: "index adapter is required"}
	}
	return nil
}

// validateNonEmpty rejects persisting an index with no live vectors.
// It runs before any file I/O is attempted.
func validateNonEmpty(count uint32) error {
	if count == 0 {
		return &ValidationError{Msg: "cannot persist an index with zero vectors"}
	}
	return nil
}
