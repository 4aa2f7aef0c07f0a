package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSampleMeshFile(t *testing.T, dir string) string {
	t.Helper()
	mesh := map[string]interface{}{
		"vertices": []map[string]float32{
			{"X": 0, "Y": 0, "Z": 0},
			{"X": 1, "Y": 0, "Z": 0},
			{"X": 0, "Y": 1, "Z": 0},
		},
		"indices":          []uint32{0, 1, 2},
		"vertex_precision": 0.001,
	}
	data, err := json.Marshal(mesh)
	require.NoError(t, err)

	path := filepath.Join(dir, "mesh.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestStorageConfigForBuildsLocalBackendConfig(t *testing.T) {
	cfg := storageConfigFor("/tmp/containers")
	assert.Equal(t, "local", cfg.Backend)
	assert.Equal(t, "/tmp/containers", cfg.LocalPath)
}

func TestRunCompressThenRunDecompressRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeSampleMeshFile(t, dir)

	compressInput = inputPath
	compressOutDir = dir
	compressID = "roundtrip-mesh"
	defer func() {
		compressInput, compressOutDir, compressID = "", ".", ""
	}()

	require.NoError(t, runCompress(compressCmd, nil))

	outPath := filepath.Join(dir, "out.json")
	decompressDir = dir
	decompressID = "roundtrip-mesh"
	decompressOutput = outPath
	defer func() {
		decompressDir, decompressID, decompressOutput = ".", "", ""
	}()

	require.NoError(t, runDecompress(decompressCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded jsonMesh
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Indices, 3)
}

func TestRunCompressRejectsMissingInput(t *testing.T) {
	compressInput = filepath.Join(t.TempDir(), "does-not-exist.json")
	compressOutDir = t.TempDir()
	compressID = ""
	defer func() {
		compressInput, compressOutDir, compressID = "", ".", ""
	}()

	err := runCompress(compressCmd, nil)
	require.Error(t, err)
}

func TestRunDecompressRejectsUnknownID(t *testing.T) {
	decompressDir = t.TempDir()
	decompressID = "never-stored"
	decompressOutput = ""
	defer func() {
		decompressDir, decompressID, decompressOutput = ".", "", ""
	}()

	err := runDecompress(decompressCmd, nil)
	require.Error(t, err)
}
