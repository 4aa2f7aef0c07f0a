package mg2

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Stream is the byte-stream contract provided to the core: typed
// little-endian read/write primitives over a caller-supplied
// transport.
type Stream interface {
	WriteRaw(p []byte) error
	WriteU32(v uint32) error
	WriteF32(v float32) error
	ReadRaw(p []byte) error
	ReadU32() (uint32, error)
	ReadF32() (float32, error)
}

// WireStream is the concrete Stream implementation used by this
// module: little-endian primitives layered over io.Writer/io.Reader.
type WireStream struct {
	w io.Writer
	r io.Reader
}

// NewWriterStream wraps w for encoding.
func NewWriterStream(w io.Writer) *WireStream {
	return &WireStream{w: w}
}

// NewReaderStream wraps r for decoding.
func NewReaderStream(r io.Reader) *WireStream {
	return &WireStream{r: r}
}

func (s *WireStream) WriteRaw(p []byte) error {
	if _, err := s.w.Write(p); err != nil {
		return ioErrorWrap(err, "write_raw", "failed to write raw bytes")
	}
	return nil
}

func (s *WireStream) WriteU32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return s.WriteRaw(buf[:])
}

func (s *WireStream) WriteF32(v float32) error {
	return s.WriteU32(math.Float32bits(v))
}

func (s *WireStream) ReadRaw(p []byte) error {
	if _, err := io.ReadFull(s.r, p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return formatErrorWrap(err, "read_raw", "truncated stream")
		}
		return ioErrorWrap(err, "read_raw", "failed to read raw bytes")
	}
	return nil
}

func (s *WireStream) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := s.ReadRaw(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (s *WireStream) ReadF32() (float32, error) {
	bits, err := s.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}
