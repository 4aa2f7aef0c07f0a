package mg2

// BuildLookupTable inverts the sort permutation: lut[originalIndex] =
// newIndex.
func BuildLookupTable(sorted []SortedVertex) ([]uint32, error) {
	lut, err := safeMake[uint32](len(sorted), "remap_indices")
	if err != nil {
		return nil, err
	}
	for newIndex, sv := range sorted {
		lut[sv.OriginalIndex] = uint32(newIndex)
	}
	return lut, nil
}

// RemapIndices rewrites a triangle index list against lut, producing a
// new slice (the input is left untouched).
func RemapIndices(indices []uint32, lut []uint32) ([]uint32, error) {
	out, err := safeMake[uint32](len(indices), "remap_indices")
	if err != nil {
		return nil, err
	}
	for i, idx := range indices {
		out[i] = lut[idx]
	}
	return out, nil
}
