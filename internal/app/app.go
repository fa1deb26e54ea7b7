// Package app wires configuration, logging, the registry client, and services.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avdwal/rioview/internal/clients/rio"
	"github.com/avdwal/rioview/internal/common"
	"github.com/avdwal/rioview/internal/interfaces"
	"github.com/avdwal/rioview/internal/services/catalog"
)

// App holds all initialized clients and services shared by the server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	RegistryClient interfaces.RegistryClient
	CatalogService interfaces.CatalogService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the registry client, and the
// catalog service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, RIOVIEW_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("RIOVIEW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "rioview.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/rioview.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	clientOpts := []rio.ClientOption{
		rio.WithBaseURL(config.Clients.Registry.BaseURL),
		rio.WithLogger(logger),
		rio.WithTimeout(config.Clients.Registry.GetTimeout()),
	}
	if config.Clients.Registry.RateLimit > 0 {
		clientOpts = append(clientOpts, rio.WithRateLimit(config.Clients.Registry.RateLimit))
	}
	registryClient := rio.NewClient(clientOpts...)

	catalogService := catalog.NewService(registryClient, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		RegistryClient: registryClient,
		CatalogService: catalogService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
