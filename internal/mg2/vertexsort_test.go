package mg2_test

import (
	"testing"

	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortVerticesOrdersByCellThenX(t *testing.T) {
	vertices := []mg2.Vec3{
		{X: 9, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)

	sorted, verticesSorted, err := mg2.SortVertices(vertices, grid)
	require.NoError(t, err)
	require.Len(t, sorted, 3)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].CellID == sorted[i-1].CellID {
			assert.LessOrEqual(t, sorted[i-1].X, sorted[i].X)
		} else {
			assert.Less(t, sorted[i-1].CellID, sorted[i].CellID)
		}
	}

	// verticesSorted must be a permutation of the input, referenced by
	// OriginalIndex.
	for i, sv := range sorted {
		assert.Equal(t, vertices[sv.OriginalIndex], verticesSorted[i])
	}
}

func TestSortVerticesIsAPermutation(t *testing.T) {
	vertices := []mg2.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 10, Z: 10},
		{X: 5, Y: 5, Z: 5},
		{X: 2, Y: 8, Z: 1},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)

	sorted, _, err := mg2.SortVertices(vertices, grid)
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, sv := range sorted {
		assert.False(t, seen[sv.OriginalIndex], "original index %d should appear exactly once", sv.OriginalIndex)
		seen[sv.OriginalIndex] = true
	}
	assert.Len(t, seen, len(vertices))
}
