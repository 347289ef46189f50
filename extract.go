package vecsnap

import (
	"github.com/vecsnap/vecsnap/model"
)

// Extract reads every live (label, point) pair out of the adapter into an
// ordered record list. Records appear in whatever order the adapter
// enumerates labels; nothing is deduplicated or reordered, so callers must
// not depend on a particular ordering unless the adapter documents one.
func Extract(adapter IndexAdapter) ([]model.VectorRecord, error) {
	labels := adapter.Labels()
	records := make([]model.VectorRecord, 0, len(labels))
	for _, label := range labels {
		point, err := adapter.PointAt(label)
		if err != nil {
			return nil, &ExtractionError{Label: label, cause: err}
		}
		records = append(records, model.VectorRecord{Label: label, Point: point})
	}
	return records, nil
}
