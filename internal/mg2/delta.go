package mg2

import "math"

// CellIDDelta replaces consecutive cell ids by their first differences.
// The input must be non-decreasing (the sorted vertex array's
// invariant); all deltas are >= 0.
func CellIDDelta(cellIDs []uint32) []int32 {
	out := make([]int32, len(cellIDs))
	if len(cellIDs) == 0 {
		return out
	}
	out[0] = int32(cellIDs[0])
	for i := 1; i < len(cellIDs); i++ {
		out[i] = int32(cellIDs[i]) - int32(cellIDs[i-1])
	}
	return out
}

// InverseCellIDDelta reconstructs cell ids from their first differences
// by prefix summation; the exact inverse of CellIDDelta.
func InverseCellIDDelta(deltas []int32) []uint32 {
	out := make([]uint32, len(deltas))
	if len(deltas) == 0 {
		return out
	}
	acc := deltas[0]
	out[0] = uint32(acc)
	for i := 1; i < len(deltas); i++ {
		acc += deltas[i]
		out[i] = uint32(acc)
	}
	return out
}

// IndexDelta applies the predictive triangle-index delta scheme in
// place, traversing in reverse (i from T-1 down to 0) to avoid
// aliasing column 0 before column 1 reads it.
func IndexDelta(tris []Triangle) {
	for i := len(tris) - 1; i >= 0; i-- {
		if i >= 1 && tris[i][0] == tris[i-1][0] {
			tris[i][1] -= tris[i-1][1]
		} else {
			tris[i][1] -= tris[i][0]
		}
		tris[i][2] -= tris[i][0]
		if i >= 1 {
			tris[i][0] -= tris[i-1][0]
		}
	}
}

// InverseIndexDelta undoes IndexDelta, traversing forward (i from 0 to
// T-1) and mirroring the three steps in the opposite order: column 0,
// then column 2, then column 1. The mirror ordering matters because
// column 1's reconstruction needs column 0 already restored for both
// i and i-1.
func InverseIndexDelta(tris []Triangle) {
	for i := 0; i < len(tris); i++ {
		if i >= 1 {
			tris[i][0] += tris[i-1][0]
		}
		tris[i][2] += tris[i][0]
		if i >= 1 && tris[i][0] == tris[i-1][0] {
			tris[i][1] += tris[i-1][1]
		} else {
			tris[i][1] += tris[i][0]
		}
	}
}

// QuantizedVertex holds the three signed 32-bit deltas the vertex
// delta scheme emits for one sorted vertex.
type QuantizedVertex struct {
	DX, Y, Z int32
}

// noCellSentinel is guaranteed not to match any valid 64x64x64 (or
// smaller) cell id.
const noCellSentinel uint32 = 0x7fffffff

// VertexDelta applies the grid-aware mixed absolute/delta scheme to a
// sorted vertex array.
func VertexDelta(sorted []Vec3, cellIDs []uint32, grid *Grid, vertexPrecision float32) []QuantizedVertex {
	scale := 1 / vertexPrecision
	out := make([]QuantizedVertex, len(sorted))

	prevCellID := noCellSentinel
	var prevDeltaX int32

	for i, v := range sorted {
		cellID := cellIDs[i]
		origin := grid.CellOrigin(cellID)

		deltaX := roundHalfAwayFromZero(float64(scale) * float64(v.X-origin.X))
		var outDX int32
		if cellID == prevCellID {
			outDX = deltaX - prevDeltaX
		} else {
			outDX = deltaX
		}

		out[i] = QuantizedVertex{
			DX: outDX,
			Y:  roundHalfAwayFromZero(float64(scale) * float64(v.Y-origin.Y)),
			Z:  roundHalfAwayFromZero(float64(scale) * float64(v.Z-origin.Z)),
		}

		prevCellID = cellID
		prevDeltaX = deltaX
	}

	return out
}

// InverseVertexDelta reconstructs sorted vertex positions from the
// quantized deltas, the cell ids they were computed against, and the
// grid, the exact inverse of VertexDelta.
func InverseVertexDelta(quant []QuantizedVertex, cellIDs []uint32, grid *Grid, vertexPrecision float32) []Vec3 {
	out := make([]Vec3, len(quant))

	prevCellID := noCellSentinel
	var prevDeltaX int32

	for i, q := range quant {
		cellID := cellIDs[i]
		origin := grid.CellOrigin(cellID)

		var deltaX int32
		if cellID == prevCellID {
			deltaX = prevDeltaX + q.DX
		} else {
			deltaX = q.DX
		}

		out[i] = Vec3{
			X: origin.X + float32(deltaX)*vertexPrecision,
			Y: origin.Y + float32(q.Y)*vertexPrecision,
			Z: origin.Z + float32(q.Z)*vertexPrecision,
		}

		prevCellID = cellID
		prevDeltaX = deltaX
	}

	return out
}

// roundHalfAwayFromZero rounds to the nearest integer, ties away from
// zero (math.Round already does this, but the rule is named here
// since the quantization scheme depends on it explicitly).
func roundHalfAwayFromZero(x float64) int32 {
	if x >= 0 {
		return int32(math.Floor(x + 0.5))
	}
	return int32(math.Ceil(x - 0.5))
}
