// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quantmotion/qdm/internal/cache"
	"github.com/quantmotion/qdm/internal/config"
	"github.com/quantmotion/qdm/internal/database"
	"github.com/quantmotion/qdm/internal/storage/gormstore"
	"github.com/quantmotion/qdm/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		// Postgres with SQLite fallback, in one manager
		db := database.NewManager(log, cfg.SqlitePath)
		return gormstore.New(db, cache.NewTrialCache()), nil
	case "sqlite":
		db := database.NewManager(log, cfg.SqlitePath)
		db.ShouldSaveLocal = true
		return gormstore.New(db, cache.NewTrialCache()), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
