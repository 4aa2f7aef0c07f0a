package mg2_test

import (
	"testing"

	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellIDDeltaRoundTrip(t *testing.T) {
	cellIDs := []uint32{3, 3, 5, 9, 9, 9, 20}
	deltas := mg2.CellIDDelta(cellIDs)
	assert.Equal(t, cellIDs, mg2.InverseCellIDDelta(deltas))
}

func TestCellIDDeltaEmpty(t *testing.T) {
	assert.Empty(t, mg2.CellIDDelta(nil))
	assert.Empty(t, mg2.InverseCellIDDelta(nil))
}

func TestCellIDDeltaFirstElementIsAbsolute(t *testing.T) {
	deltas := mg2.CellIDDelta([]uint32{7, 7, 8})
	assert.Equal(t, int32(7), deltas[0])
}

// TestIndexDeltaWorkedExample checks a hand-verified worked example
// for the predictive triangle-index delta scheme: canonicalized
// triangles (0,1,2), (0,3,4), (1,2,3) encode to (0,1,2), (0,2,4), (1,1,2).
func TestIndexDeltaWorkedExample(t *testing.T) {
	tris := []mg2.Triangle{{0, 1, 2}, {0, 3, 4}, {1, 2, 3}}
	mg2.IndexDelta(tris)
	assert.Equal(t, []mg2.Triangle{{0, 1, 2}, {0, 2, 4}, {1, 1, 2}}, tris)
}

func TestIndexDeltaRoundTrip(t *testing.T) {
	original := []mg2.Triangle{{0, 1, 2}, {0, 3, 4}, {1, 2, 3}, {5, 6, 9}}
	tris := make([]mg2.Triangle, len(original))
	copy(tris, original)

	mg2.IndexDelta(tris)
	mg2.InverseIndexDelta(tris)

	assert.Equal(t, original, tris)
}

func TestIndexDeltaSingleTriangle(t *testing.T) {
	original := []mg2.Triangle{{4, 5, 6}}
	tris := make([]mg2.Triangle, len(original))
	copy(tris, original)

	mg2.IndexDelta(tris)
	mg2.InverseIndexDelta(tris)

	assert.Equal(t, original, tris)
}

func TestVertexDeltaRoundTripWithinPrecisionBound(t *testing.T) {
	vertices := []mg2.Vec3{
		{X: 0.1234, Y: 5.6789, Z: -1.2345},
		{X: 0.1334, Y: 5.6689, Z: -1.2445},
		{X: 10.5, Y: -3.25, Z: 2.125},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)
	cellIDs := make([]uint32, len(vertices))
	for i, v := range vertices {
		cellIDs[i] = grid.PointToCell(v)
	}
	precision := float32(1e-4)

	quant := mg2.VertexDelta(vertices, cellIDs, grid, precision)
	restored := mg2.InverseVertexDelta(quant, cellIDs, grid, precision)

	require.Len(t, restored, len(vertices))
	for i := range vertices {
		assert.InDelta(t, vertices[i].X, restored[i].X, float64(precision))
		assert.InDelta(t, vertices[i].Y, restored[i].Y, float64(precision))
		assert.InDelta(t, vertices[i].Z, restored[i].Z, float64(precision))
	}
}

func TestVertexDeltaSameCellUsesDeltaOnX(t *testing.T) {
	// Two vertices landing in the same cell: the second's DX is encoded
	// relative to the first's deltaX.
	vertices := []mg2.Vec3{
		{X: 1.0, Y: 1.0, Z: 1.0},
		{X: 1.001, Y: 1.0, Z: 1.0},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)
	cellIDs := []uint32{grid.PointToCell(vertices[0]), grid.PointToCell(vertices[0])}
	precision := float32(1e-4)

	quant := mg2.VertexDelta(vertices, cellIDs, grid, precision)
	restored := mg2.InverseVertexDelta(quant, cellIDs, grid, precision)

	assert.InDelta(t, vertices[0].X, restored[0].X, float64(precision))
	assert.InDelta(t, vertices[1].X, restored[1].X, float64(precision))
}
