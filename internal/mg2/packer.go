package mg2

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"
	"math"
)

// Packer is the black-box entropy codec contract: pack/unpack of
// arrays of signed 32-bit integers and 32-bit floats, with a
// channel-count hint the core passes through without interpreting.
// The core treats packing as a black box; this module supplies one
// concrete implementation, FlatePacker, so the codec is runnable end
// to end. See DESIGN.md for why it is built on compress/flate rather
// than a third-party entropy coder.
type Packer interface {
	PackSignedInts(s Stream, values []int32, channels int) error
	PackFloats(s Stream, values []float32, channels int) error
	UnpackSignedInts(s Stream, elementCount, channels int) ([]int32, error)
	UnpackFloats(s Stream, elementCount, channels int) ([]float32, error)
}

// FlatePacker packs arrays as a length-prefixed DEFLATE stream. The
// channel count is accepted for interface compatibility but does not
// change the encoding: channelized hints get no extra entropy
// reduction, the same simplification shared by texture coordinates
// and normals.
type FlatePacker struct{}

func (FlatePacker) PackSignedInts(s Stream, values []int32, channels int) error {
	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[4*i:], uint32(v))
	}
	return packRaw(s, raw)
}

func (FlatePacker) PackFloats(s Stream, values []float32, channels int) error {
	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}
	return packRaw(s, raw)
}

func (FlatePacker) UnpackSignedInts(s Stream, elementCount, channels int) ([]int32, error) {
	n := elementCount * channels
	raw, err := unpackRaw(s, 4*n)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out, nil
}

func (FlatePacker) UnpackFloats(s Stream, elementCount, channels int) ([]float32, error) {
	n := elementCount * channels
	raw, err := unpackRaw(s, 4*n)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out, nil
}

func packRaw(s Stream, raw []byte) error {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		return ioErrorWrap(err, "pack", "failed to open deflate writer")
	}
	if _, err := fw.Write(raw); err != nil {
		return ioErrorWrap(err, "pack", "failed to deflate payload")
	}
	if err := fw.Close(); err != nil {
		return ioErrorWrap(err, "pack", "failed to flush deflate writer")
	}

	if err := s.WriteU32(uint32(len(raw))); err != nil {
		return err
	}
	if err := s.WriteU32(uint32(buf.Len())); err != nil {
		return err
	}
	return s.WriteRaw(buf.Bytes())
}

func unpackRaw(s Stream, expectedRawLen int) ([]byte, error) {
	rawLen, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(rawLen) != expectedRawLen {
		return nil, formatError("unpack", "packed payload length does not match expected element count")
	}
	compLen, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	comp := make([]byte, compLen)
	if err := s.ReadRaw(comp); err != nil {
		return nil, err
	}

	fr := flate.NewReader(bytes.NewReader(comp))
	defer fr.Close()
	raw := make([]byte, rawLen)
	if _, err := io.ReadFull(fr, raw); err != nil {
		return nil, formatErrorWrap(err, "unpack", "failed to inflate packed payload")
	}
	return raw, nil
}
