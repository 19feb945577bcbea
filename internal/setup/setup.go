package setup

import (
	"github.com/no-thing-project/hub-frontend/internal/config"
	"github.com/no-thing-project/hub-frontend/internal/handler"
	"github.com/no-thing-project/hub-frontend/internal/hub"
	"github.com/no-thing-project/hub-frontend/internal/markdown"
	mw "github.com/no-thing-project/hub-frontend/internal/middleware"
	"github.com/no-thing-project/hub-frontend/shared/logger"
)

// Dependencies holds everything the router needs, wired once at startup.
type Dependencies struct {
	Config   config.Public
	Handler  *handler.Handler
	Auth     *mw.Auth
	Sessions *hub.SessionManager
}

func SetupDependencies(cfg *config.Config) *Dependencies {
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	retry := hub.DefaultRetryPolicy()
	if cfg.Public.RetryBaseDelay > 0 {
		retry.BaseDelay = cfg.Public.RetryBaseDelay
	}
	if cfg.Public.RetryMax > 0 {
		retry.MaxRetries = cfg.Public.RetryMax
	}

	sessions := hub.NewSessionManager(cfg.Public.BackendBaseURL, cfg.BackendApiKey(), retry, cfg.Public.SessionIdleTTL)

	return &Dependencies{
		Config:   cfg.Public,
		Handler:  handler.New(markdown.New()),
		Auth:     mw.NewAuth(sessions),
		Sessions: sessions,
	}
}
