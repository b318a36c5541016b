// Package gormstore persists trial results through GORM. The same backend
// serves SQLite and Postgres; the database manager decides which dialect is
// in play and handles the Postgres-to-SQLite fallback.
package gormstore

import (
	"fmt"

	"github.com/quantmotion/qdm/internal/cache"
	"github.com/quantmotion/qdm/internal/database"
	"github.com/quantmotion/qdm/internal/model"
	"github.com/quantmotion/qdm/internal/model/core"
)

// Backend writes results to a relational database.
type Backend struct {
	db     *database.Manager
	trials *cache.TrialCache
}

// New creates a GORM-backed storage backend.
func New(db *database.Manager, trials *cache.TrialCache) *Backend {
	return &Backend{db: db, trials: trials}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	var err error
	if b.db.ShouldSaveLocal {
		err = b.db.ConnectSqlite()
	} else {
		err = b.db.Connect()
	}
	if err != nil {
		return err
	}
	return b.db.Setup()
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.db.Close()
}

// StartTrial inserts the trial row and assigns its ID to t. Re-analyzing a
// source path within one session reuses the existing trial row instead of
// duplicating it.
func (b *Backend) StartTrial(t *core.Trial) error {
	if id, ok := b.trials.Get(t.SourcePath); ok {
		t.ID = id
		return nil
	}

	row := model.TrialFromCore(t)
	if err := b.db.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("inserting trial for %s: %w", t.SourcePath, err)
	}
	t.ID = row.ID
	b.trials.Set(t.SourcePath, row.ID)
	return nil
}

// FinishTrial updates mutable trial fields after analysis.
func (b *Backend) FinishTrial(t *core.Trial) error {
	return b.db.DB.Model(&model.Trial{}).
		Where("id = ?", t.ID).
		Update("frame_count", t.FrameCount).Error
}

// RecordMarkerMotion inserts one marker's motion metrics.
func (b *Backend) RecordMarkerMotion(m *core.MarkerMotion) error {
	row := model.MarkerMotionFromCore(m, m.TrialID)
	if err := b.db.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("inserting marker motion %q: %w", m.Marker, err)
	}
	m.ID = row.ID
	return nil
}
