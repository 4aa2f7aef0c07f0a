// Package mg2 implements the MG2 lossy triangle-mesh compression codec:
// a grid-based vertex clustering sort, predictive delta encoding of
// cell ids, triangle indices and quantized vertex coordinates, and the
// chunked binary framing that ties them together. The package is a
// pure, single-threaded library: it never logs, never touches the
// filesystem, and never retries. See CompressMG2 and DecompressMG2.
package mg2

// Vec3 is a 3-tuple of 32-bit floats, used for vertex positions and
// normals.
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 is a 2-tuple of 32-bit floats, used for texture coordinates.
type Vec2 struct {
	U, V float32
}

// Mesh is the uncompressed input to CompressMG2 and the output of
// DecompressMG2.
//
// Invariants: len(Vertices) >= 1, len(Indices) >= 3 and a multiple of
// 3, every index < len(Vertices); TexCoords is either empty or has
// length len(Vertices); Normals is either empty or has length
// len(Vertices). VertexPrecision must be positive.
type Mesh struct {
	Vertices         []Vec3
	Indices          []uint32
	TexCoords        []Vec2
	Normals          []Vec3
	VertexPrecision  float32
}

// TriangleCount returns the number of triangles represented by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasTexCoords reports whether per-vertex texture coordinates are
// present.
func (m *Mesh) HasTexCoords() bool {
	return len(m.TexCoords) > 0
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// Validate checks the shape invariants a Mesh must satisfy before it
// is handed to CompressMG2.
func (m *Mesh) Validate() error {
	v := len(m.Vertices)
	if v == 0 {
		return fieldError("vertices", "mesh must have at least one vertex")
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fieldError("indices", "index count must be a non-zero multiple of 3")
	}
	for _, idx := range m.Indices {
		if int(idx) >= v {
			return fieldError("indices", "index out of range of vertex array")
		}
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != v {
		return fieldError("tex_coords", "tex_coords length must be 0 or match vertex count")
	}
	if len(m.Normals) != 0 && len(m.Normals) != v {
		return fieldError("normals", "normals length must be 0 or match vertex count")
	}
	if m.VertexPrecision <= 0 {
		return fieldError("vertex_precision", "vertex_precision must be positive")
	}
	return nil
}
