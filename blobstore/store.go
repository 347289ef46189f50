// Package blobstore abstracts where snapshot blobs live so the codec
// layer can target a local directory, memory, or object storage through
// one interface.
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads and writes whole snapshot blobs. Snapshots are always fully
// materialized in memory before a write and fully read before a decode,
// so the interface deals in complete byte slices rather than streams.
type Store interface {
	// Put writes a blob, replacing any existing blob of the same name.
	// Implementations should make the replacement as atomic as the
	// backend allows.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a complete blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
