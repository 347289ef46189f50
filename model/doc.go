// Package model defines the shared snapshot types used throughout vecsnap.
//
//   - VectorRecord: one live (label, point) pair
//   - Metadata: index construction parameters that survive a round trip
//   - Snapshot: the transient in-memory form of a serialized index
//   - SpaceKind: the distance metric enum with its name and code mappings
//
// The package also fixes the global limits (MaxDimension, MaxVectors) and
// the decode defaults both codecs share.
package model
