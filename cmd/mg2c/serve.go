package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arx-os/mg2container/internal/api"
	"github.com/arx-os/mg2container/internal/config"
	"github.com/arx-os/mg2container/internal/container"
	"github.com/arx-os/mg2container/internal/logger"
	"github.com/arx-os/mg2container/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr       string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MG2 container HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "optional config file (yaml or json)")
}

func runServe(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()
	if serveConfigPath != "" {
		loader.AddSource(config.NewFileSource(serveConfigPath))
	}
	loader.AddSource(config.NewEnvSource("MG2_"))

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logger.INFO
	if cfg.LogLevel == "debug" {
		level = logger.DEBUG
	}
	log := logger.New(os.Stderr, level)

	backend, err := storage.NewFromConfig(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to build storage backend: %w", err)
	}

	var opts []container.Option
	if cfg.Cache.Enabled {
		cache, err := container.NewDecodeCache(cfg.Cache.MaxCost, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to build decode cache: %w", err)
		}
		opts = append(opts, container.WithCache(cache))
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, container.WithMetrics(container.NewMetrics(cfg.Metrics.Namespace)))
	}
	opts = append(opts, container.WithLogger(log.WithField("component", "container_service")))

	svc := container.NewService(backend, opts...)
	handler := api.NewHandler(svc, log.WithField("component", "api"))

	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	log.Info("starting mg2c server", logger.Field{Key: "addr", Value: serveAddr})
	return router.Run(serveAddr)
}
