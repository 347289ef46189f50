package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsnap/vecsnap/model"
)

func TestInsertAndRetrieve(t *testing.T) {
	idx := New(2, model.SpaceL2)

	require.NoError(t, idx.Insert([]float32{1, 2}, 10, false))
	require.NoError(t, idx.Insert([]float32{3, 4}, 20, false))

	assert.Equal(t, uint32(2), idx.Count())
	assert.Equal(t, []uint32{10, 20}, idx.Labels())

	point, err := idx.PointAt(10)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, point)

	// Returned point is a copy.
	point[0] = 99
	again, err := idx.PointAt(10)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, again)

	_, err = idx.PointAt(30)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertErrors(t *testing.T) {
	idx := New(2, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1, 2}, 1, false))

	assert.ErrorIs(t, idx.Insert([]float32{1, 2, 3}, 2, false), ErrDimensionMismatch)
	assert.ErrorIs(t, idx.Insert([]float32{5, 6}, 1, false), ErrDuplicateLabel)
}

func TestDeleteAndReplaceDeleted(t *testing.T) {
	idx := New(1, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1}, 1, false))
	require.NoError(t, idx.Delete(1))

	assert.Equal(t, uint32(0), idx.Count())
	assert.ErrorIs(t, idx.Delete(1), ErrNotFound)

	// A deleted slot needs replaceDeleted to be reused.
	assert.ErrorIs(t, idx.Insert([]float32{2}, 1, false), ErrDuplicateLabel)
	require.NoError(t, idx.Insert([]float32{2}, 1, true))

	point, err := idx.PointAt(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, point)
}

func TestReplaceDeletedEnumeratesOnce(t *testing.T) {
	idx := New(1, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1}, 1, false))
	require.NoError(t, idx.Insert([]float32{2}, 2, false))
	require.NoError(t, idx.Delete(1))
	require.NoError(t, idx.Insert([]float32{3}, 1, true))

	// The reused label must not show up twice in the enumeration.
	assert.Equal(t, []uint32{1, 2}, idx.Labels())
	assert.Equal(t, uint32(2), idx.Count())
}

func TestCapacity(t *testing.T) {
	idx := New(1, model.SpaceL2)
	require.NoError(t, idx.Init(2, 16, 200, 100))

	require.NoError(t, idx.Insert([]float32{1}, 1, false))
	require.NoError(t, idx.Insert([]float32{2}, 2, false))
	assert.ErrorIs(t, idx.Insert([]float32{3}, 3, false), ErrCapacityExceeded)
	assert.Equal(t, uint32(2), idx.MaxCapacity())
}

func TestInitResets(t *testing.T) {
	idx := New(1, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1}, 1, false))

	require.NoError(t, idx.Init(10, 32, 400, 42))

	assert.Equal(t, uint32(0), idx.Count())
	assert.Empty(t, idx.Labels())
	require.NoError(t, idx.Insert([]float32{1}, 1, false))
}

func TestSearchL2(t *testing.T) {
	idx := New(2, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{0, 0}, 0, false))
	require.NoError(t, idx.Insert([]float32{1, 0}, 1, false))
	require.NoError(t, idx.Insert([]float32{5, 5}, 2, false))

	results, err := idx.Search([]float32{0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, uint32(1), results[0].Label)
	assert.Equal(t, uint32(0), results[1].Label)
}

func TestSearchInnerProduct(t *testing.T) {
	idx := New(2, model.SpaceInnerProduct)
	require.NoError(t, idx.Insert([]float32{1, 0}, 1, false))
	require.NoError(t, idx.Insert([]float32{10, 0}, 2, false))

	results, err := idx.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint32(2), results[0].Label)
}

func TestSearchCosine(t *testing.T) {
	idx := New(2, model.SpaceCosine)
	require.NoError(t, idx.Insert([]float32{10, 0}, 1, false))
	require.NoError(t, idx.Insert([]float32{1, 1}, 2, false))

	// Cosine ignores magnitude; (1,0) aligns perfectly with label 1.
	results, err := idx.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint32(1), results[0].Label)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}

func TestSearchErrors(t *testing.T) {
	idx := New(2, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1, 2}, 1, false))

	_, err := idx.Search([]float32{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = idx.Search([]float32{1}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearchKLargerThanIndex(t *testing.T) {
	idx := New(1, model.SpaceL2)
	require.NoError(t, idx.Insert([]float32{1}, 1, false))

	results, err := idx.Search([]float32{0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
