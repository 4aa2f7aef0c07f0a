package mg2_test

import (
	"testing"

	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/stretchr/testify/assert"
)

func TestRotateToMinExample(t *testing.T) {
	// (5, 2, 7) rotates to (2, 7, 5).
	got := mg2.RotateToMin(mg2.Triangle{5, 2, 7})
	assert.Equal(t, mg2.Triangle{2, 7, 5}, got)
}

func TestRotateToMinAlreadyMinimal(t *testing.T) {
	got := mg2.RotateToMin(mg2.Triangle{1, 2, 3})
	assert.Equal(t, mg2.Triangle{1, 2, 3}, got)
}

func TestRotateToMinPreservesCyclicOrder(t *testing.T) {
	cases := []mg2.Triangle{
		{1, 2, 3}, {2, 3, 1}, {3, 1, 2},
	}
	for _, tc := range cases {
		got := mg2.RotateToMin(tc)
		assert.Equal(t, mg2.Triangle{1, 2, 3}, got, "rotation of %v", tc)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	tris := []mg2.Triangle{{5, 2, 7}, {0, 3, 4}, {1, 0, 2}}
	once := mg2.Canonicalize(tris)
	twice := mg2.Canonicalize(once)
	assert.Equal(t, once, twice)
}

func TestCanonicalizeSortsByFirstTwoColumns(t *testing.T) {
	tris := []mg2.Triangle{{3, 0, 1}, {1, 2, 3}, {0, 3, 4}}
	out := mg2.Canonicalize(tris)
	for i := 1; i < len(out); i++ {
		if out[i][0] == out[i-1][0] {
			assert.LessOrEqual(t, out[i-1][1], out[i][1])
		} else {
			assert.Less(t, out[i-1][0], out[i][0])
		}
	}
}

func TestTriangleIndexRoundTrip(t *testing.T) {
	indices := []uint32{0, 1, 2, 3, 4, 5}
	tris := mg2.TrianglesFromIndices(indices)
	assert.Equal(t, indices, mg2.IndicesFromTriangles(tris))
}
