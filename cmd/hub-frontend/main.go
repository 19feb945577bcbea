package main

import (
	"net/http"
	"os"
	"time"

	"github.com/no-thing-project/hub-frontend/internal/config"
	"github.com/no-thing-project/hub-frontend/internal/router"
	"github.com/no-thing-project/hub-frontend/internal/setup"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

const (
	defaultConfigFolder = "config"
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

func main() {
	configFolder := os.Getenv("CONFIG_FOLDER")
	if configFolder == "" {
		configFolder = defaultConfigFolder
	}
	cfg := config.MustLoad(configFolder)

	deps := setup.SetupDependencies(cfg)
	r := router.New(deps)

	server := &http.Server{
		Addr:         cfg.Public.Addr,
		Handler:      r,
		ReadTimeout:  orDefault(cfg.Public.ReadTimeout, defaultReadTimeout),
		WriteTimeout: orDefault(cfg.Public.WriteTimeout, defaultWriteTimeout),
	}

	logger.Log.Info("starting hub-frontend", "addr", server.Addr, "backend", cfg.Public.BackendBaseURL)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
