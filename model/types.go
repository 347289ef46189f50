package model

import (
	"fmt"
)

// Limits shared by both on-disk encodings. Snapshots outside these bounds
// are rejected on decode regardless of how well-formed the rest of the
// payload is.
const (
	// MaxDimension is the largest accepted vector dimensionality.
	MaxDimension = 100_000
	// MaxVectors is the largest accepted vector count per snapshot.
	MaxVectors = 100_000_000
)

// FormatVersion is the only snapshot format version currently in existence.
const FormatVersion = 1

// Decode defaults for metadata fields a document may omit.
const (
	DefaultM              = 16
	DefaultEFConstruction = 200
	DefaultRandomSeed     = 100
	DefaultMaxElements    = 100
)

// SpaceKind identifies the distance/similarity metric an index is
// configured for.
type SpaceKind uint8

const (
	// SpaceL2 is squared Euclidean distance.
	SpaceL2 SpaceKind = iota
	// SpaceInnerProduct is inner product similarity.
	SpaceInnerProduct
	// SpaceCosine is cosine similarity.
	SpaceCosine
)

// String returns the canonical short name ("l2", "ip", "cosine").
func (s SpaceKind) String() string {
	switch s {
	case SpaceL2:
		return "l2"
	case SpaceInnerProduct:
		return "ip"
	case SpaceCosine:
		return "cosine"
	default:
		return fmt.Sprintf("SpaceKind(%d)", uint8(s))
	}
}

// Code returns the small-integer code used by the binary encoding.
// Unknown kinds map to the L2 code rather than failing; see
// SpaceKindFromCode for the matching decode leniency.
func (s SpaceKind) Code() uint8 {
	if s.Valid() {
		return uint8(s)
	}
	return uint8(SpaceL2)
}

// Valid reports whether s is one of the three defined kinds.
func (s SpaceKind) Valid() bool {
	return s <= SpaceCosine
}

// ParseSpaceKind resolves a canonical short name. The text decode path is
// strict: any name other than "l2", "ip" or "cosine" is an error.
func ParseSpaceKind(name string) (SpaceKind, error) {
	switch name {
	case "l2":
		return SpaceL2, nil
	case "ip":
		return SpaceInnerProduct, nil
	case "cosine":
		return SpaceCosine, nil
	default:
		return SpaceL2, fmt.Errorf("unknown space kind %q", name)
	}
}

// SpaceKindFromCode resolves a binary space code.
//
// Out-of-range codes resolve to SpaceL2 instead of failing. This is
// deliberately asymmetric with the strict name check on the text path:
// existing binary files may rely on the lenient default, so it is kept
// as observed behavior.
func SpaceKindFromCode(code uint8) SpaceKind {
	if s := SpaceKind(code); s.Valid() {
		return s
	}
	return SpaceL2
}

// VectorRecord is one live (label, point) pair pulled out of an index.
// Labels are caller-assigned and need not be contiguous or sorted.
type VectorRecord struct {
	Label uint32
	Point []float32
}

// Metadata carries the index construction parameters that must survive a
// save/load round trip.
type Metadata struct {
	Space          SpaceKind
	Dimension      uint32
	MaxElements    uint32
	M              uint32
	EFConstruction uint32
	RandomSeed     uint32
}

// Snapshot is the transient in-memory form of a serialized index. It is
// built on the stack of a single save or load call and never cached or
// shared across calls; no component retains a reference after the call
// returns.
type Snapshot struct {
	Version uint8
	Meta    Metadata
	Records []VectorRecord
}

// Validate checks the global snapshot invariants: version, dimension and
// count bounds, and per-record point length.
func (s *Snapshot) Validate() error {
	if s.Version != FormatVersion {
		return fmt.Errorf("unsupported version %d", s.Version)
	}
	if s.Meta.Dimension == 0 || s.Meta.Dimension > MaxDimension {
		return fmt.Errorf("dimension %d out of range (0, %d]", s.Meta.Dimension, MaxDimension)
	}
	if len(s.Records) > MaxVectors {
		return fmt.Errorf("vector count %d exceeds limit %d", len(s.Records), MaxVectors)
	}
	for i, rec := range s.Records {
		if uint32(len(rec.Point)) != s.Meta.Dimension {
			return fmt.Errorf("record %d (label %d): point length %d != dimension %d",
				i, rec.Label, len(rec.Point), s.Meta.Dimension)
		}
	}
	return nil
}
