package mg2_test

import (
	"testing"

	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/stretchr/testify/assert"
)

func TestGridBijectionOnCellOrigins(t *testing.T) {
	divisions := [3]uint32{4, 4, 4}
	grid := mg2.NewGridFromBounds(mg2.Vec3{X: 0, Y: 0, Z: 0}, mg2.Vec3{X: 4, Y: 4, Z: 4}, divisions)

	total := uint32(divisions[0] * divisions[1] * divisions[2])
	for k := uint32(0); k < total; k++ {
		origin := grid.CellOrigin(k)
		assert.Equal(t, k, grid.PointToCell(origin), "cell id %d should round-trip through its origin", k)
	}
}

func TestGridPointWithinCellBounds(t *testing.T) {
	grid := mg2.NewGridFromBounds(mg2.Vec3{X: 0, Y: 0, Z: 0}, mg2.Vec3{X: 8, Y: 8, Z: 8}, [3]uint32{8, 8, 8})

	p := mg2.Vec3{X: 3.4, Y: 1.1, Z: 7.9}
	id := grid.PointToCell(p)
	origin := grid.CellOrigin(id)
	size := grid.CellSize()

	assert.LessOrEqual(t, origin.X, p.X)
	assert.Less(t, p.X, origin.X+size.X)
	assert.LessOrEqual(t, origin.Y, p.Y)
	assert.Less(t, p.Y, origin.Y+size.Y)
	assert.LessOrEqual(t, origin.Z, p.Z)
	assert.Less(t, p.Z, origin.Z+size.Z)
}

func TestGridDegenerateAxisCollapsesToZero(t *testing.T) {
	// Flat mesh in z=0: max.Z == min.Z, so cell_size.Z == 0 and every
	// point must map to k_z == 0.
	vertices := []mg2.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)
	assert.Equal(t, float32(0), grid.CellSize().Z)

	for _, v := range vertices {
		id := grid.PointToCell(v)
		// decompose back: kz should be 0 for all of them.
		kz := id / (grid.Divisions[0] * grid.Divisions[1])
		assert.Equal(t, uint32(0), kz)
	}
}

func TestNewGridComputesBoundingBox(t *testing.T) {
	vertices := []mg2.Vec3{
		{X: -1, Y: 2, Z: 0.5},
		{X: 3, Y: -4, Z: 7},
		{X: 0, Y: 0, Z: 0},
	}
	grid := mg2.NewGrid(vertices, mg2.EncoderDivisions)

	assert.Equal(t, mg2.Vec3{X: -1, Y: -4, Z: 0}, grid.Min)
	assert.Equal(t, mg2.Vec3{X: 3, Y: 2, Z: 7}, grid.Max)
}
