package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/undercity-game/undercity/internal/catalog"
	"github.com/undercity-game/undercity/internal/config"
)

// LoadCatalog loads and validates the item catalog from disk.
// The catalog is immutable after startup; a broken config file fails
// the boot rather than surfacing at the first purchase.
func LoadCatalog(cfg *config.Config) (catalog.Lookup, error) {
	catalogConfig, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	lookup, err := catalog.New(catalogConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"path", cfg.CatalogPath,
		"items", len(lookup.All()),
		"version", catalogConfig.Version)

	return lookup, nil
}
