// Command mg2c is a thin CLI over the MG2 container service: compress
// a JSON mesh dump into a container, decompress one back out, or serve
// the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "mg2c",
	Short:         "Compress and inspect MG2 mesh containers",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func main() {
	rootCmd.AddCommand(compressCmd, decompressCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mg2c:", err)
		os.Exit(1)
	}
}
