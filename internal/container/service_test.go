package container_test

import (
	"context"
	"testing"
	"time"

	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh() *mg2.Mesh {
	return &mg2.Mesh{
		Vertices: []mg2.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Indices:         []uint32{0, 1, 2},
		VertexPrecision: 0.001,
	}
}

func TestServiceStoreAndLoadRoundTrip(t *testing.T) {
	backend := storage.Local(t.TempDir())
	svc := container.NewService(backend)

	mesh := testMesh()
	id, err := svc.Store(context.Background(), mesh)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Vertices, 3)
	require.Len(t, got.Indices, 3)
}

func TestServiceExistsAndDelete(t *testing.T) {
	backend := storage.Local(t.TempDir())
	svc := container.NewService(backend)

	mesh := testMesh()
	id, err := svc.Store(context.Background(), mesh)
	require.NoError(t, err)

	exists, err := svc.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Delete(context.Background(), id))

	exists, err = svc.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestServiceUsesDecodeCache(t *testing.T) {
	backend := storage.Local(t.TempDir())
	cache, err := container.NewDecodeCache(1<<20, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	svc := container.NewService(backend, container.WithCache(cache))

	mesh := testMesh()
	id, err := svc.Store(context.Background(), mesh)
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), id)
	require.NoError(t, err)

	// Delete the underlying blob directly; a cache hit must still serve
	// the previously decoded mesh.
	require.NoError(t, backend.Delete(context.Background(), "meshes/"+id+".ctm"))

	got, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Vertices, 3)

	metrics := cache.Metrics()
	assert.GreaterOrEqual(t, metrics.Hits, int64(1))
}

func TestLoadUnknownIDFails(t *testing.T) {
	backend := storage.Local(t.TempDir())
	svc := container.NewService(backend)

	_, err := svc.Load(context.Background(), "does-not-exist")
	require.Error(t, err)
}
