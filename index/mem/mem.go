// Package mem provides a brute-force in-memory vector index.
//
// It is the reference engine behind the vecsnap IndexAdapter interface:
// small, exact, and good enough to exercise save/load round trips and
// k-nearest-neighbor sanity checks without an external search library.
package mem

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/vecsnap/vecsnap"
	"github.com/vecsnap/vecsnap/model"
)

// Compile-time check that Index satisfies the snapshot adapter interface.
var _ vecsnap.IndexAdapter = (*Index)(nil)

var (
	// ErrDimensionMismatch is returned when a point's length differs from
	// the index dimensionality.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDuplicateLabel is returned when inserting a label that is
	// already live.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrCapacityExceeded is returned when the index is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrNotFound is returned when a label is not live in the index.
	ErrNotFound = errors.New("label not found")
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// SearchResult is one k-NN hit.
type SearchResult struct {
	Label uint32
	// Score is metric-dependent: smaller is better for L2, larger is
	// better for inner product and cosine.
	Score float32
}

// Index is a flat, exact in-memory vector index keyed by caller-assigned
// labels. It satisfies the vecsnap IndexAdapter interface.
//
// All methods are safe for concurrent use.
type Index struct {
	mu          sync.RWMutex
	space       model.SpaceKind
	dim         uint32
	maxElements uint32

	m              uint32
	efConstruction uint32
	randomSeed     uint32

	points  map[uint32][]float32
	deleted map[uint32]struct{}
	order   []uint32 // label insertion order, used for enumeration
}

// New creates an index with the given dimensionality and space kind,
// with unbounded capacity until Init is called.
func New(dim uint32, space model.SpaceKind) *Index {
	return &Index{
		space:          space,
		dim:            dim,
		m:              model.DefaultM,
		efConstruction: model.DefaultEFConstruction,
		randomSeed:     model.DefaultRandomSeed,
		points:         make(map[uint32][]float32),
		deleted:        make(map[uint32]struct{}),
	}
}

// Dimension returns the index dimensionality.
func (x *Index) Dimension() uint32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dim
}

// Count returns the number of live vectors.
func (x *Index) Count() uint32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return uint32(len(x.points))
}

// MaxCapacity returns the element capacity, 0 meaning unbounded.
func (x *Index) MaxCapacity() uint32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.maxElements
}

// Space returns the configured space kind.
func (x *Index) Space() model.SpaceKind {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.space
}

// Labels enumerates live labels in insertion order.
func (x *Index) Labels() []uint32 {
	x.mu.RLock()
	defer x.mu.RUnlock()

	labels := make([]uint32, 0, len(x.points))
	for _, label := range x.order {
		if _, ok := x.points[label]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// PointAt returns a copy of the point stored under the label.
func (x *Index) PointAt(label uint32) ([]float32, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	point, ok := x.points[label]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, label)
	}
	out := make([]float32, len(point))
	copy(out, point)
	return out, nil
}

// Insert stores a point under the label. A live duplicate label fails
// with ErrDuplicateLabel; a label that was deleted earlier is only reused
// when replaceDeleted is set.
func (x *Index) Insert(point []float32, label uint32, replaceDeleted bool) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if uint32(len(point)) != x.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(point), x.dim)
	}
	if _, ok := x.points[label]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateLabel, label)
	}
	_, wasDeleted := x.deleted[label]
	if wasDeleted && !replaceDeleted {
		return fmt.Errorf("%w: %d was deleted and replaceDeleted is disabled", ErrDuplicateLabel, label)
	}
	if x.maxElements > 0 && uint32(len(x.points)) >= x.maxElements {
		return fmt.Errorf("%w: max %d elements", ErrCapacityExceeded, x.maxElements)
	}

	stored := make([]float32, len(point))
	copy(stored, point)
	x.points[label] = stored
	delete(x.deleted, label)
	// A reused slot already has its entry in the enumeration order.
	if !wasDeleted {
		x.order = append(x.order, label)
	}
	return nil
}

// Delete removes a live label. The slot can be refilled later with
// Insert(..., replaceDeleted=true).
func (x *Index) Delete(label uint32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.points[label]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, label)
	}
	delete(x.points, label)
	x.deleted[label] = struct{}{}
	return nil
}

// Init (re)initializes the index with the given construction parameters,
// discarding any existing content. The graph parameters are retained only
// so they can be reported back on the next save.
func (x *Index) Init(maxElements, m, efConstruction, randomSeed uint32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.maxElements = maxElements
	x.m = m
	x.efConstruction = efConstruction
	x.randomSeed = randomSeed
	x.points = make(map[uint32][]float32)
	x.deleted = make(map[uint32]struct{})
	x.order = x.order[:0]
	return nil
}

// Search returns the k nearest neighbors of query under the configured
// space kind, best first.
func (x *Index) Search(query []float32, k int) ([]SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if k <= 0 {
		return nil, ErrInvalidK
	}
	if uint32(len(query)) != x.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(query), x.dim)
	}

	// Max-heap on "badness" keeps the k best seen so far.
	h := &resultHeap{space: x.space}
	for _, label := range x.order {
		point, ok := x.points[label]
		if !ok {
			continue
		}
		score := score(x.space, query, point)
		heap.Push(h, SearchResult{Label: label, Score: score})
		if h.Len() > k {
			heap.Pop(h)
		}
	}

	results := h.items
	sort.Slice(results, func(i, j int) bool {
		return better(x.space, results[i].Score, results[j].Score)
	})
	return results, nil
}

func score(space model.SpaceKind, a, b []float32) float32 {
	switch space {
	case model.SpaceInnerProduct:
		return dot(a, b)
	case model.SpaceCosine:
		na, nb := norm(a), norm(b)
		if na == 0 || nb == 0 {
			return 0
		}
		return dot(a, b) / (na * nb)
	default:
		var sum float32
		for i := range a {
			d := a[i] - b[i]
			sum += d * d
		}
		return sum
	}
}

// better reports whether score s beats score t under the space kind.
func better(space model.SpaceKind, s, t float32) bool {
	if space == model.SpaceL2 {
		return s < t
	}
	return s > t
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(a []float32) float32 {
	return float32(math.Sqrt(float64(dot(a, a))))
}

type resultHeap struct {
	space model.SpaceKind
	items []SearchResult
}

func (h *resultHeap) Len() int { return len(h.items) }

// Less orders the worst result first so Pop evicts it.
func (h *resultHeap) Less(i, j int) bool {
	return better(h.space, h.items[j].Score, h.items[i].Score)
}

func (h *resultHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *resultHeap) Push(v any) { h.items = append(h.items, v.(SearchResult)) }

func (h *resultHeap) Pop() any {
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last
}
