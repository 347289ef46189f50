package vecsnap

// IndexAdapter is the capability interface over an externally supplied
// vector index. The codec layer never reaches into index internals; it
// only enumerates live content on save and replays it on load.
//
// Capability completeness is enforced by the compiler: any value
// satisfying this interface exposes every operation the codec needs, so
// the only runtime check left at the entry points is that the adapter is
// not nil.
type IndexAdapter interface {
	// Dimension returns the index dimensionality.
	Dimension() uint32
	// Count returns the number of currently-live vectors.
	Count() uint32
	// Labels enumerates all currently-live labels. The order is whatever
	// the index yields; callers must not assume it is sorted or stable.
	Labels() []uint32
	// PointAt returns the point stored under the given label.
	PointAt(label uint32) ([]float32, error)
	// Insert stores a point under the given label. replaceDeleted allows
	// reusing the slot of a previously deleted label.
	Insert(point []float32, label uint32, replaceDeleted bool) error
	// Init (re)initializes the index with the given construction
	// parameters, discarding any existing content.
	Init(maxElements, m, efConstruction, randomSeed uint32) error
	// MaxCapacity returns the element capacity the index was built with.
	MaxCapacity() uint32
}
