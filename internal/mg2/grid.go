package mg2

// Grid partitions the vertex cloud's bounding box into an axis-aligned
// lattice and maps between a point and a linear cell id.
type Grid struct {
	Min, Max   Vec3
	Divisions  [3]uint32
	cellSize   Vec3
}

// EncoderDivisions is the fixed lattice resolution the encoder always
// uses; the decoder must accept any Divisions >= 1 per axis.
var EncoderDivisions = [3]uint32{64, 64, 64}

// NewGrid computes the bounding box of vertices and builds a Grid with
// the given per-axis division counts.
func NewGrid(vertices []Vec3, divisions [3]uint32) *Grid {
	g := &Grid{Divisions: divisions}
	g.Min = vertices[0]
	g.Max = vertices[0]
	for _, v := range vertices[1:] {
		if v.X < g.Min.X {
			g.Min.X = v.X
		}
		if v.Y < g.Min.Y {
			g.Min.Y = v.Y
		}
		if v.Z < g.Min.Z {
			g.Min.Z = v.Z
		}
		if v.X > g.Max.X {
			g.Max.X = v.X
		}
		if v.Y > g.Max.Y {
			g.Max.Y = v.Y
		}
		if v.Z > g.Max.Z {
			g.Max.Z = v.Z
		}
	}
	g.recomputeCellSize()
	return g
}

// NewGridFromBounds rebuilds a Grid from a decoded header: a stored
// min/max/divisions triple with no access to the original vertices.
func NewGridFromBounds(min, max Vec3, divisions [3]uint32) *Grid {
	g := &Grid{Min: min, Max: max, Divisions: divisions}
	g.recomputeCellSize()
	return g
}

func (g *Grid) recomputeCellSize() {
	g.cellSize = Vec3{
		X: axisCellSize(g.Max.X, g.Min.X, g.Divisions[0]),
		Y: axisCellSize(g.Max.Y, g.Min.Y, g.Divisions[1]),
		Z: axisCellSize(g.Max.Z, g.Min.Z, g.Divisions[2]),
	}
}

func axisCellSize(max, min float32, divisions uint32) float32 {
	if divisions == 0 {
		return 0
	}
	return (max - min) / float32(divisions)
}

// CellSize returns the per-axis cell dimensions.
func (g *Grid) CellSize() Vec3 {
	return g.cellSize
}

// PointToCell maps a point to its linear cell id.
func (g *Grid) PointToCell(p Vec3) uint32 {
	kx := axisIndex(p.X, g.Min.X, g.cellSize.X, g.Divisions[0])
	ky := axisIndex(p.Y, g.Min.Y, g.cellSize.Y, g.Divisions[1])
	kz := axisIndex(p.Z, g.Min.Z, g.cellSize.Z, g.Divisions[2])
	return kx + g.Divisions[0]*(ky+g.Divisions[1]*kz)
}

func axisIndex(p, min, cellSize float32, divisions uint32) uint32 {
	var k int64
	if cellSize == 0 {
		k = 0
	} else {
		k = int64((p - min) / cellSize)
	}
	if k < 0 {
		k = 0
	}
	if max := int64(divisions) - 1; k > max {
		k = max
	}
	return uint32(k)
}

// CellOrigin returns the componentwise minimum corner of cell id.
func (g *Grid) CellOrigin(id uint32) Vec3 {
	kx := id % g.Divisions[0]
	rest := id / g.Divisions[0]
	ky := rest % g.Divisions[1]
	kz := rest / g.Divisions[1]

	return Vec3{
		X: g.Min.X + float32(kx)*g.cellSize.X,
		Y: g.Min.Y + float32(ky)*g.cellSize.Y,
		Z: g.Min.Z + float32(kz)*g.cellSize.Z,
	}
}

// CellCount returns the total number of cells in the lattice.
func (g *Grid) CellCount() uint64 {
	return uint64(g.Divisions[0]) * uint64(g.Divisions[1]) * uint64(g.Divisions[2])
}
