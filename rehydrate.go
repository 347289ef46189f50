package vecsnap

import (
	"github.com/vecsnap/vecsnap/model"
)

// Rehydrate drives a fresh adapter to the logical state described by
// decoded metadata and records: one Init call with the construction
// parameters, then one insertion per record in file order with
// replace-deleted disabled.
//
// An insertion failure (for example a duplicate label) stops the replay
// and is returned as a RehydrationError wrapping the adapter's cause.
// Previously inserted records are not rolled back.
func Rehydrate(adapter IndexAdapter, meta model.Metadata, records []model.VectorRecord) error {
	if err := adapter.Init(meta.MaxElements, meta.M, meta.EFConstruction, meta.RandomSeed); err != nil {
		return &RehydrationError{Index: -1, cause: err}
	}
	for i, rec := range records {
		if err := adapter.Insert(rec.Point, rec.Label, false); err != nil {
			return &RehydrationError{Index: i, Label: rec.Label, cause: err}
		}
	}
	return nil
}
