package mg2

// DecodeOptions carries the mesh-shape metadata the decompress context
// must supply: the decoder does not re-derive vertex/triangle counts
// or optional-channel presence from the stream, the caller already
// knows its own mesh shape.
type DecodeOptions struct {
	VertexCount   int
	TriangleCount int
	HasTexCoords  bool
	HasNormals    bool
}

// CompressMG2 runs the full MG2 encode pipeline: grid setup, HEAD,
// vertex sort and quantized delta (VERT), cell-id delta (GIDX), index
// remap and canonicalized predictive delta (INDX), and the optional
// TEXC/NORM passthrough chunks.
func CompressMG2(s Stream, mesh *Mesh, packer Packer) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	grid := NewGrid(mesh.Vertices, EncoderDivisions)
	if err := writeHead(s, grid, mesh.VertexPrecision); err != nil {
		return err
	}

	sorted, verticesSorted, err := SortVertices(mesh.Vertices, grid)
	if err != nil {
		return err
	}
	cellIDs := make([]uint32, len(sorted))
	for i, sv := range sorted {
		cellIDs[i] = sv.CellID
	}

	quant := VertexDelta(verticesSorted, cellIDs, grid, mesh.VertexPrecision)
	if err := writeQuantizedVertices(s, packer, quant); err != nil {
		return err
	}

	gidxDeltas := CellIDDelta(cellIDs)
	if err := writeCellIDDeltas(s, packer, gidxDeltas); err != nil {
		return err
	}

	lut, err := BuildLookupTable(sorted)
	if err != nil {
		return err
	}
	remapped, err := RemapIndices(mesh.Indices, lut)
	if err != nil {
		return err
	}
	tris := Canonicalize(TrianglesFromIndices(remapped))
	IndexDelta(tris)
	if err := writeTriangleDeltas(s, packer, tris); err != nil {
		return err
	}

	if mesh.HasTexCoords() {
		permuted := permuteVec2(mesh.TexCoords, sorted)
		if err := writeTexCoords(s, packer, permuted); err != nil {
			return err
		}
	}
	if mesh.HasNormals() {
		permuted := permuteVec3(mesh.Normals, sorted)
		if err := writeNormals(s, packer, permuted); err != nil {
			return err
		}
	}

	return nil
}

// DecompressMG2 runs the full MG2 decode pipeline, inverting every
// stage CompressMG2 applied. The returned mesh's vertices are in
// MG2's canonical sorted order, not the caller's original order:
// order preservation is not guaranteed.
func DecompressMG2(s Stream, opts DecodeOptions, packer Packer) (*Mesh, error) {
	head, err := readHead(s)
	if err != nil {
		return nil, err
	}

	quant, err := readQuantizedVertices(s, packer, opts.VertexCount)
	if err != nil {
		return nil, err
	}

	gidxDeltas, err := readCellIDDeltas(s, packer, opts.VertexCount)
	if err != nil {
		return nil, err
	}
	cellIDs := InverseCellIDDelta(gidxDeltas)

	vertices := InverseVertexDelta(quant, cellIDs, head.grid, head.vertexPrecision)

	tris, err := readTriangleDeltas(s, packer, opts.TriangleCount)
	if err != nil {
		return nil, err
	}
	InverseIndexDelta(tris)
	indices := IndicesFromTriangles(tris)

	mesh := &Mesh{
		Vertices:        vertices,
		Indices:         indices,
		VertexPrecision: head.vertexPrecision,
	}

	if opts.HasTexCoords {
		texCoords, err := readTexCoords(s, packer, opts.VertexCount)
		if err != nil {
			return nil, err
		}
		mesh.TexCoords = texCoords
	}
	if opts.HasNormals {
		normals, err := readNormals(s, packer, opts.VertexCount)
		if err != nil {
			return nil, err
		}
		mesh.Normals = normals
	}

	return mesh, nil
}

func permuteVec2(values []Vec2, sorted []SortedVertex) []Vec2 {
	out := make([]Vec2, len(sorted))
	for i, sv := range sorted {
		out[i] = values[sv.OriginalIndex]
	}
	return out
}

func permuteVec3(values []Vec3, sorted []SortedVertex) []Vec3 {
	out := make([]Vec3, len(sorted))
	for i, sv := range sorted {
		out[i] = values[sv.OriginalIndex]
	}
	return out
}
