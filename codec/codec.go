// Package codec implements the two on-disk snapshot encodings.
//
// Codec selection is a compatibility boundary: bytes written by one codec
// only decode with the same codec, and the choice is derived from the
// destination filename suffix so that files remain self-selecting.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/vecsnap/vecsnap/model"
)

// Codec encodes/decodes a snapshot to and from one on-disk representation.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode materializes the complete byte sequence for the snapshot.
	// It never performs I/O; failures leave nothing partially written.
	Encode(snap *model.Snapshot) ([]byte, error)
	// Decode parses and fully validates data before returning the snapshot.
	Decode(data []byte) (*model.Snapshot, error)
	// Name returns the stable codec name.
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "binary":
		return Binary{}, true
	default:
		return nil, false
	}
}

// ForFilename selects the codec for a destination name: ".bin" and ".dat"
// select the binary codec, everything else (including ".json" and no
// extension at all) selects the text codec.
//
// A trailing compression suffix (".zst", ".lz4") is stripped before the
// decision, so "index.bin.zst" still selects the binary codec.
func ForFilename(name string) Codec {
	switch strings.ToLower(filepath.Ext(StripCompression(name))) {
	case ".bin", ".dat":
		return Binary{}
	default:
		return JSON{}
	}
}

// Default is the codec used when nothing better can be inferred.
var Default Codec = JSON{}
