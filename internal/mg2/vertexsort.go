package mg2

import "sort"

// SortedVertex is the intermediate record produced by SortVertices: it
// remembers which input vertex ended up where.
type SortedVertex struct {
	X             float32
	CellID        uint32
	OriginalIndex uint32
}

// SortVertices assigns each vertex a grid cell id and returns the
// sorted records (primary key CellID, secondary key X ascending)
// together with the permuted vertex array in the same order.
func SortVertices(vertices []Vec3, grid *Grid) ([]SortedVertex, []Vec3, error) {
	n := len(vertices)
	sorted, err := safeMake[SortedVertex](n, "sort_vertices")
	if err != nil {
		return nil, nil, err
	}

	for i, v := range vertices {
		sorted[i] = SortedVertex{
			X:             v.X,
			CellID:        grid.PointToCell(v),
			OriginalIndex: uint32(i),
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CellID != sorted[j].CellID {
			return sorted[i].CellID < sorted[j].CellID
		}
		return sorted[i].X < sorted[j].X
	})

	verticesSorted, err := safeMake[Vec3](n, "sort_vertices")
	if err != nil {
		return nil, nil, err
	}
	for i, sv := range sorted {
		verticesSorted[i] = vertices[sv.OriginalIndex]
	}

	return sorted, verticesSorted, nil
}
