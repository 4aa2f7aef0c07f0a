package mg2

// writeQuantizedVertices emits the VERT chunk: a packed int array of
// length 3V, channel count 3.
func writeQuantizedVertices(s Stream, packer Packer, quant []QuantizedVertex) error {
	if err := writeTag(s, tagVERT); err != nil {
		return err
	}
	flat := make([]int32, 0, 3*len(quant))
	for _, q := range quant {
		flat = append(flat, q.DX, q.Y, q.Z)
	}
	return packer.PackSignedInts(s, flat, 3)
}

// readQuantizedVertices reads and fully consumes the VERT chunk,
// unpacking the 3V-length payload. The inverse vertex-delta and
// cell-id-delta stages in codec.go then invert it using the grid and
// vertex_precision from HEAD.
func readQuantizedVertices(s Stream, packer Packer, vertexCount int) ([]QuantizedVertex, error) {
	if err := readTag(s, "decode_vert", tagVERT); err != nil {
		return nil, err
	}
	flat, err := packer.UnpackSignedInts(s, vertexCount, 3)
	if err != nil {
		return nil, err
	}
	out := make([]QuantizedVertex, vertexCount)
	for i := range out {
		out[i] = QuantizedVertex{DX: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
	}
	return out, nil
}

// writeCellIDDeltas emits the GIDX chunk: a packed int array of length
// V, channel count 1.
func writeCellIDDeltas(s Stream, packer Packer, deltas []int32) error {
	if err := writeTag(s, tagGIDX); err != nil {
		return err
	}
	return packer.PackSignedInts(s, deltas, 1)
}

func readCellIDDeltas(s Stream, packer Packer, vertexCount int) ([]int32, error) {
	if err := readTag(s, "decode_gidx", tagGIDX); err != nil {
		return nil, err
	}
	return packer.UnpackSignedInts(s, vertexCount, 1)
}

// writeTriangleDeltas emits the INDX chunk: a packed int array of
// length 3T, channel count 3.
func writeTriangleDeltas(s Stream, packer Packer, tris []Triangle) error {
	if err := writeTag(s, tagINDX); err != nil {
		return err
	}
	flat := make([]int32, 0, 3*len(tris))
	for _, t := range tris {
		flat = append(flat, int32(t[0]), int32(t[1]), int32(t[2]))
	}
	return packer.PackSignedInts(s, flat, 3)
}

func readTriangleDeltas(s Stream, packer Packer, triangleCount int) ([]Triangle, error) {
	if err := readTag(s, "decode_indx", tagINDX); err != nil {
		return nil, err
	}
	flat, err := packer.UnpackSignedInts(s, triangleCount, 3)
	if err != nil {
		return nil, err
	}
	out := make([]Triangle, triangleCount)
	for i := range out {
		out[i] = Triangle{uint32(flat[3*i]), uint32(flat[3*i+1]), uint32(flat[3*i+2])}
	}
	return out, nil
}

// writeTexCoords emits the optional TEXC chunk: a packed float array of
// length 2V, channel count 1. No entropy reduction is applied beyond
// the packer's own encoding, the same intentional simplification
// shared with NORM.
func writeTexCoords(s Stream, packer Packer, texCoords []Vec2) error {
	if err := writeTag(s, tagTEXC); err != nil {
		return err
	}
	flat := make([]float32, 0, 2*len(texCoords))
	for _, t := range texCoords {
		flat = append(flat, t.U, t.V)
	}
	return packer.PackFloats(s, flat, 1)
}

func readTexCoords(s Stream, packer Packer, vertexCount int) ([]Vec2, error) {
	if err := readTag(s, "decode_texc", tagTEXC); err != nil {
		return nil, err
	}
	flat, err := packer.UnpackFloats(s, 2*vertexCount, 1)
	if err != nil {
		return nil, err
	}
	out := make([]Vec2, vertexCount)
	for i := range out {
		out[i] = Vec2{U: flat[2*i], V: flat[2*i+1]}
	}
	return out, nil
}

// writeNormals emits the optional NORM chunk: a packed float array of
// length 3V, channel count 3.
func writeNormals(s Stream, packer Packer, normals []Vec3) error {
	if err := writeTag(s, tagNORM); err != nil {
		return err
	}
	flat := make([]float32, 0, 3*len(normals))
	for _, n := range normals {
		flat = append(flat, n.X, n.Y, n.Z)
	}
	return packer.PackFloats(s, flat, 3)
}

func readNormals(s Stream, packer Packer, vertexCount int) ([]Vec3, error) {
	if err := readTag(s, "decode_norm", tagNORM); err != nil {
		return nil, err
	}
	flat, err := packer.UnpackFloats(s, vertexCount, 3)
	if err != nil {
		return nil, err
	}
	out := make([]Vec3, vertexCount)
	for i := range out {
		out[i] = Vec3{X: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
	}
	return out, nil
}
