package mg2

// Chunk tags, 4 bytes of ASCII with no terminator.
const (
	tagHEAD = "HEAD"
	tagVERT = "VERT"
	tagGIDX = "GIDX"
	tagINDX = "INDX"
	tagTEXC = "TEXC"
	tagNORM = "NORM"
)

// headVersion is the only HEAD version this codec understands.
const headVersion uint32 = 1

func writeTag(s Stream, tag string) error {
	return s.WriteRaw([]byte(tag))
}

func readTag(s Stream, operation, expected string) error {
	buf := make([]byte, 4)
	if err := s.ReadRaw(buf); err != nil {
		return err
	}
	if string(buf) != expected {
		return formatError(operation, "unexpected chunk tag: expected "+expected+", got "+string(buf))
	}
	return nil
}

// writeHead writes the HEAD chunk: version, vertex precision, and the
// grid's bounding box and divisions.
func writeHead(s Stream, grid *Grid, vertexPrecision float32) error {
	if err := writeTag(s, tagHEAD); err != nil {
		return err
	}
	if err := s.WriteU32(headVersion); err != nil {
		return err
	}
	if err := s.WriteF32(vertexPrecision); err != nil {
		return err
	}
	for _, f := range []float32{grid.Min.X, grid.Min.Y, grid.Min.Z, grid.Max.X, grid.Max.Y, grid.Max.Z} {
		if err := s.WriteF32(f); err != nil {
			return err
		}
	}
	for _, d := range grid.Divisions {
		if err := s.WriteU32(d); err != nil {
			return err
		}
	}
	return nil
}

// headerInfo is the validated content of a decoded HEAD chunk.
type headerInfo struct {
	vertexPrecision float32
	grid            *Grid
}

// readHead reads and validates the HEAD chunk: magic, version == 1,
// vertex_precision > 0, max >= min componentwise, divisions >= 1.
func readHead(s Stream) (*headerInfo, error) {
	if err := readTag(s, "decode_head", tagHEAD); err != nil {
		return nil, err
	}
	version, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != headVersion {
		return nil, formatError("decode_head", "unsupported HEAD version")
	}

	precision, err := s.ReadF32()
	if err != nil {
		return nil, err
	}
	if precision <= 0 {
		return nil, formatError("decode_head", "vertex_precision must be positive")
	}

	var min, max Vec3
	for _, f := range []*float32{&min.X, &min.Y, &min.Z, &max.X, &max.Y, &max.Z} {
		v, err := s.ReadF32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	if max.X < min.X || max.Y < min.Y || max.Z < min.Z {
		return nil, formatError("decode_head", "grid max must be >= min componentwise")
	}

	var divisions [3]uint32
	for i := range divisions {
		d, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		if d < 1 {
			return nil, formatError("decode_head", "grid divisions must be >= 1")
		}
		divisions[i] = d
	}

	return &headerInfo{
		vertexPrecision: precision,
		grid:            NewGridFromBounds(min, max, divisions),
	}, nil
}
