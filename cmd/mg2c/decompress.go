package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/spf13/cobra"
)

var (
	decompressDir    string
	decompressID     string
	decompressOutput string
)

var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Decompress an MG2 container back into a JSON mesh dump",
	RunE:  runDecompress,
}

func init() {
	decompressCmd.Flags().StringVar(&decompressDir, "dir", ".", "directory the container was stored in")
	decompressCmd.Flags().StringVar(&decompressID, "id", "", "container id to decompress (required)")
	decompressCmd.Flags().StringVar(&decompressOutput, "output", "", "path to write the JSON mesh dump to (default: stdout)")
	decompressCmd.MarkFlagRequired("id")
}

func runDecompress(cmd *cobra.Command, args []string) error {
	backend, err := storage.NewFromConfig(context.Background(), storageConfigFor(decompressDir))
	if err != nil {
		return err
	}

	svc := container.NewService(backend)
	mesh, err := svc.Load(context.Background(), decompressID)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}

	jm := jsonMesh{
		Vertices:        mesh.Vertices,
		Indices:         mesh.Indices,
		TexCoords:       mesh.TexCoords,
		Normals:         mesh.Normals,
		VertexPrecision: mesh.VertexPrecision,
	}
	data, err := json.MarshalIndent(jm, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mesh as JSON: %w", err)
	}

	if decompressOutput == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(decompressOutput, data, 0644)
}
