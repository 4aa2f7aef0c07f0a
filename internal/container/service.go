// Package container implements the MG2 container service: a storage-
// backed, cached, instrumented wrapper around the pure mg2 codec. It
// owns the identifier scheme, the manifest that carries the mesh-shape
// metadata DecompressMG2 needs out of band, and the decode cache.
package container

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"time"

	internalerrors "github.com/arx-os/mg2container/internal/errors"
	"github.com/arx-os/mg2container/internal/logger"
	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/google/uuid"
)

// DecodedMesh is a cache entry: a decoded mesh plus its approximate
// in-memory cost, used as the ristretto cost hint.
type DecodedMesh struct {
	Mesh *mg2.Mesh
	Cost int64
}

// manifestVersion guards the envelope format wrapping the raw MG2
// stream; bump it if the manifest fields ever change shape.
const manifestVersion uint32 = 1

// Service stores and retrieves meshes as MG2 containers, identified by
// UUID, backed by a pluggable storage.Backend, optionally cached in an
// in-process decode cache and instrumented with Prometheus metrics.
type Service struct {
	backend storage.Backend
	cache   *DecodeCache
	metrics *Metrics
	log     *logger.Logger
	packer  mg2.Packer
}

// Option configures a Service.
type Option func(*Service)

// WithCache attaches a decode cache to the service.
func WithCache(cache *DecodeCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithMetrics attaches Prometheus instrumentation to the service.
func WithMetrics(metrics *Metrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

// WithLogger overrides the service's default logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithPacker overrides the entropy packer used to frame containers.
func WithPacker(packer mg2.Packer) Option {
	return func(s *Service) { s.packer = packer }
}

// NewService builds a container service over the given storage backend.
func NewService(backend storage.Backend, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		log:     logger.Default().WithField("component", "container_service"),
		packer:  mg2.FlatePacker{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store compresses mesh and writes it to the backend under a freshly
// generated id, returning that id.
func (s *Service) Store(ctx context.Context, mesh *mg2.Mesh) (string, error) {
	id := uuid.NewString()
	if err := s.StoreAt(ctx, id, mesh); err != nil {
		return "", err
	}
	return id, nil
}

// StoreAt compresses mesh and writes it to the backend under id,
// overwriting any existing container with that id.
func (s *Service) StoreAt(ctx context.Context, id string, mesh *mg2.Mesh) error {
	start := time.Now()

	var buf bytes.Buffer
	if err := writeManifest(&buf, mesh); err != nil {
		s.recordError()
		return err
	}
	if err := mg2.CompressMG2(mg2.NewWriterStream(&buf), mesh, s.packer); err != nil {
		s.recordError()
		return err
	}

	if err := s.backend.Put(ctx, blobKey(id), buf.Bytes()); err != nil {
		s.recordError()
		return internalerrors.IOWrap(err, "store", "failed to write container to storage backend")
	}

	if s.cache != nil {
		s.cache.Invalidate(id)
	}
	if s.metrics != nil {
		s.metrics.recordCompress(buf.Len(), time.Since(start).Seconds())
	}
	s.log.Debug("stored container", logger.Field{Key: "id", Value: id}, logger.Field{Key: "bytes", Value: buf.Len()})
	return nil
}

// Load reads and decompresses the container stored under id, using the
// decode cache when present.
func (s *Service) Load(ctx context.Context, id string) (*mg2.Mesh, error) {
	if s.cache != nil {
		if decoded, ok := s.cache.Get(id); ok {
			if s.metrics != nil {
				s.metrics.recordCacheHit()
			}
			return decoded.Mesh, nil
		}
		if s.metrics != nil {
			s.metrics.recordCacheMiss()
		}
	}

	start := time.Now()
	data, err := s.backend.Get(ctx, blobKey(id))
	if err != nil {
		s.recordError()
		return nil, internalerrors.IOWrap(err, "load", "failed to read container from storage backend")
	}

	r := bytes.NewReader(data)
	opts, err := readManifest(r)
	if err != nil {
		s.recordError()
		return nil, err
	}

	mesh, err := mg2.DecompressMG2(mg2.NewReaderStream(r), opts, s.packer)
	if err != nil {
		s.recordError()
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.recordDecompress(time.Since(start).Seconds())
	}
	if s.cache != nil {
		s.cache.Set(id, &DecodedMesh{Mesh: mesh, Cost: meshCost(mesh)}, meshCost(mesh))
	}
	return mesh, nil
}

// Delete removes the container stored under id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
	if err := s.backend.Delete(ctx, blobKey(id)); err != nil {
		s.recordError()
		return internalerrors.IOWrap(err, "delete", "failed to delete container from storage backend")
	}
	return nil
}

// Exists reports whether a container is stored under id.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.backend.Exists(ctx, blobKey(id))
}

func (s *Service) recordError() {
	if s.metrics != nil {
		s.metrics.recordError()
	}
}

func blobKey(id string) string {
	return "meshes/" + id + ".ctm"
}

func meshCost(mesh *mg2.Mesh) int64 {
	cost := int64(len(mesh.Vertices)) * 12
	cost += int64(len(mesh.Indices)) * 4
	cost += int64(len(mesh.TexCoords)) * 8
	cost += int64(len(mesh.Normals)) * 12
	return cost
}

// writeManifest writes the mesh-shape metadata the MG2 decode path
// needs out of band, ahead of the raw codec stream.
func writeManifest(buf *bytes.Buffer, mesh *mg2.Mesh) error {
	var header [20]byte
	binary.LittleEndian.PutUint32(header[0:4], manifestVersion)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(mesh.Vertices)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(mesh.TriangleCount()))
	binary.LittleEndian.PutUint32(header[12:16], boolToUint32(mesh.HasTexCoords()))
	binary.LittleEndian.PutUint32(header[16:20], boolToUint32(mesh.HasNormals()))
	_, err := buf.Write(header[:])
	if err != nil {
		return internalerrors.IOWrap(err, "write_manifest", "failed to write container manifest")
	}
	return nil
}

func readManifest(r *bytes.Reader) (mg2.DecodeOptions, error) {
	var header [20]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return mg2.DecodeOptions{}, internalerrors.IOWrap(err, "read_manifest", "failed to read container manifest")
	}
	version := binary.LittleEndian.Uint32(header[0:4])
	if version != manifestVersion {
		return mg2.DecodeOptions{}, internalerrors.Format("read_manifest", "unsupported container manifest version")
	}
	return mg2.DecodeOptions{
		VertexCount:   int(binary.LittleEndian.Uint32(header[4:8])),
		TriangleCount: int(binary.LittleEndian.Uint32(header[8:12])),
		HasTexCoords:  binary.LittleEndian.Uint32(header[12:16]) != 0,
		HasNormals:    binary.LittleEndian.Uint32(header[16:20]) != 0,
	}, nil
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
