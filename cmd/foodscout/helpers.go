package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/foodscout/internal/config"
	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/fooddb/usda"
	"github.com/at-ishikawa/foodscout/internal/lookup"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// loadDatabase loads the configured food database, seeding it on first use.
func loadDatabase() (*config.Config, *fooddb.FileStore, *fooddb.Database, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fail(msgConfig, fmt.Errorf("load config > %w", err))
	}

	store := fooddb.NewFileStore(cfg.Store.Path)
	db, err := store.Load()
	if err != nil {
		return nil, nil, nil, fail(msgStoreLoad, fmt.Errorf("store.Load() > %w", err))
	}
	return cfg, store, db, nil
}

// newResolver returns nil when remote lookups are disabled.
func newResolver(cfg config.USDAConfig) (lookup.Resolver, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}

	client := usda.NewClient(usda.Config{
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		DataType: cfg.DataType,
		PageSize: cfg.PageSize,
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	return client, func() {
		if err := client.Close(); err != nil {
			slog.Default().Warn("Failed to close USDA client", "error", err)
		}
	}
}
