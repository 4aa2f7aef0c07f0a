package mg2

import "sort"

// Triangle is a single (i0, i1, i2) index triple.
type Triangle [3]uint32

// RotateToMin rotates a triangle so its smallest vertex index is in
// position 0, preserving cyclic orientation. The tie-break matches
// the reference bit-for-bit: ties leave the current order unchanged.
func RotateToMin(t Triangle) Triangle {
	a, b, c := t[0], t[1], t[2]
	if b < a && b < c {
		return Triangle{b, c, a}
	}
	if c < a && c < b {
		return Triangle{c, a, b}
	}
	return Triangle{a, b, c}
}

// TrianglesFromIndices groups a flat index list into triangles.
func TrianglesFromIndices(indices []uint32) []Triangle {
	tris := make([]Triangle, len(indices)/3)
	for i := range tris {
		tris[i] = Triangle{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	return tris
}

// IndicesFromTriangles flattens triangles back into an index list.
func IndicesFromTriangles(tris []Triangle) []uint32 {
	out := make([]uint32, len(tris)*3)
	for i, t := range tris {
		out[3*i], out[3*i+1], out[3*i+2] = t[0], t[1], t[2]
	}
	return out
}

// Canonicalize rotates every triangle to minimum-first, then
// lexicographically sorts the triangle list by (i0, i1). i2 is not a
// sort key.
func Canonicalize(tris []Triangle) []Triangle {
	out := make([]Triangle, len(tris))
	for i, t := range tris {
		out[i] = RotateToMin(t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
