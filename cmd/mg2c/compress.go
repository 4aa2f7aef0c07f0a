package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/mg2"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/spf13/cobra"
)

var (
	compressInput  string
	compressOutDir string
	compressID     string
)

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Compress a JSON mesh dump into an MG2 container",
	RunE:  runCompress,
}

func init() {
	compressCmd.Flags().StringVar(&compressInput, "input", "", "path to a JSON mesh dump (required)")
	compressCmd.Flags().StringVar(&compressOutDir, "out-dir", ".", "directory to write the container into")
	compressCmd.Flags().StringVar(&compressID, "id", "", "container id to store under (default: a generated UUID)")
	compressCmd.MarkFlagRequired("input")
}

// jsonMesh is the on-disk dump format for the CLI: plain JSON, not the
// binary MG2 wire format produced inside the container.
type jsonMesh struct {
	Vertices        []mg2.Vec3 `json:"vertices"`
	Indices         []uint32   `json:"indices"`
	TexCoords       []mg2.Vec2 `json:"tex_coords,omitempty"`
	Normals         []mg2.Vec3 `json:"normals,omitempty"`
	VertexPrecision float32    `json:"vertex_precision"`
}

func runCompress(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(compressInput)
	if err != nil {
		return fmt.Errorf("failed to read input mesh: %w", err)
	}

	var jm jsonMesh
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("failed to parse input mesh as JSON: %w", err)
	}

	mesh := &mg2.Mesh{
		Vertices:        jm.Vertices,
		Indices:         jm.Indices,
		TexCoords:       jm.TexCoords,
		Normals:         jm.Normals,
		VertexPrecision: jm.VertexPrecision,
	}

	backend, err := storage.NewFromConfig(context.Background(), storageConfigFor(compressOutDir))
	if err != nil {
		return err
	}

	svc := container.NewService(backend)

	var id string
	if compressID != "" {
		id = compressID
		err = svc.StoreAt(context.Background(), id, mesh)
	} else {
		id, err = svc.Store(context.Background(), mesh)
	}
	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}

	fmt.Printf("stored container %s (%d vertices, %d triangles) in %s\n", id, len(mesh.Vertices), mesh.TriangleCount(), compressOutDir)
	return nil
}
