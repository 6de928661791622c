// Package app wires configuration, clients and services together
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternlane/newsdesk/internal/clients/backend"
	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/feed"
	"github.com/ternlane/newsdesk/internal/impact"
	"github.com/ternlane/newsdesk/internal/interfaces"
	"github.com/ternlane/newsdesk/internal/refresh"
)

// App holds all initialized services and clients. It is the shared core
// behind cmd/newsdesk-server.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	BackendClient interfaces.BackendClient
	Feed          interfaces.FeedService
	Impact        interfaces.ImpactService
	Refresh       interfaces.RefreshCoordinator
	StartupTime   time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, the backend client and all services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: provided path, NEWSDESK_CONFIG, binary dir, then
	// the development fallback.
	if configPath == "" {
		configPath = os.Getenv("NEWSDESK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "newsdesk.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/newsdesk.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	client := backend.NewClient(
		backend.WithBaseURL(config.Backend.BaseURL),
		backend.WithRateLimit(config.Backend.RateLimit),
		backend.WithTimeout(config.Backend.GetTimeout()),
		backend.WithLogger(logger),
	)

	feedService := feed.NewService(client, logger)
	impactService := impact.NewService(client, logger)
	coordinator := refresh.NewCoordinator(client, feedService, impactService, logger)

	return &App{
		Config:        config,
		Logger:        logger,
		BackendClient: client,
		Feed:          feedService,
		Impact:        impactService,
		Refresh:       coordinator,
		StartupTime:   time.Now(),
	}, nil
}

// WarmFeed performs the initial news load in the background so startup does
// not block on the backend. A failed warm load is logged and the view starts
// empty; the first dashboard request retries.
func (a *App) WarmFeed() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.Backend.GetTimeout())
		defer cancel()
		if err := a.Feed.Load(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("Initial news load failed")
		}
	}()
}
