package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jo-hoe/gocollage/internal/backend"
	"github.com/jo-hoe/gocollage/internal/core"
)

const configPathEnv = "CONFIG_PATH"

func getConfigPath() (string, bool) {
	// First check if config path is provided via environment variable
	if configPath := os.Getenv(configPathEnv); configPath != "" {
		return configPath, true
	}

	// Default to config.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml"), false
}

func loadConfig() (*core.ServiceConfig, error) {
	configPath, explicit := getConfigPath()
	config, err := core.LoadConfig(configPath)
	if err == nil {
		slog.Info("configuration loaded", "path", configPath)
		return config, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		slog.Warn("no config file found, using defaults", "path", configPath)
		return core.DefaultConfig(), nil
	}
	return nil, err
}

func main() {
	config, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	coreService, err := core.NewCoreService(context.Background(), config)
	if err != nil {
		slog.Error("failed to initialize core service", "error", err)
		os.Exit(1)
	}

	server, err := backend.NewServer(config)
	if err != nil {
		slog.Error("failed to create http server", "error", err)
		os.Exit(1)
	}
	apiService := backend.NewAPIService(coreService)
	apiService.SetRoutes(server)

	portString := fmt.Sprintf(":%d", config.Port)

	// Start HTTP server in a goroutine to allow graceful shutdown
	go func() {
		slog.Info("starting server", "port", config.Port)
		if err := server.Start(portString); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := coreService.Close(); err != nil {
		slog.Error("core service close error", "error", err)
	}
}
