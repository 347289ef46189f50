// Package vecsnap persists approximate-nearest-neighbor vector indexes to
// durable storage and reconstructs them later with bit-for-bit equivalent
// content.
//
// The index itself stays opaque: vecsnap talks to it only through the
// IndexAdapter capability interface, pulling live (label, point) pairs out
// on save and replaying them on load. Two on-disk encodings exist, a
// human-readable JSON document and a fixed-layout binary format, selected
// by the destination suffix (".bin"/".dat" binary, everything else JSON).
//
// # Quick Start
//
//	idx := mem.New(128, model.SpaceL2)
//	// ... fill the index ...
//
//	if err := vecsnap.Save(idx, "vectors.bin", vecsnap.WithSpaceKind(model.SpaceL2)); err != nil {
//	    log.Fatal(err)
//	}
//
//	fresh := mem.New(128, model.SpaceL2)
//	meta, err := vecsnap.Load(fresh, "vectors.bin")
//
// Appending ".zst" or ".lz4" to a filename compresses the snapshot
// transparently. SaveToStore/LoadFromStore run the same pipeline against a
// blobstore.Store (local directory, memory, S3, MinIO).
//
// Saves and loads against different destinations are independent and may
// run concurrently; SaveAll/LoadAll do exactly that.
package vecsnap
