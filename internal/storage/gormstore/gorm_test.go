package gormstore

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmotion/qdm/internal/cache"
	"github.com/quantmotion/qdm/internal/database"
	"github.com/quantmotion/qdm/internal/model"
	"github.com/quantmotion/qdm/internal/model/core"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	mgr := database.NewManager(zerolog.Nop(), filepath.Join(t.TempDir(), "qdm_test.db"))
	mgr.ShouldSaveLocal = true

	b := New(mgr, cache.NewTrialCache())
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackend_TrialRoundTrip(t *testing.T) {
	b := newTestBackend(t)

	trial := core.Trial{
		SourcePath: "/data/trial01.csv",
		Title:      "Trajectories",
		SampleRate: 100,
		Units:      []string{"mm", "mm", "mm"},
	}
	require.NoError(t, b.StartTrial(&trial))
	require.NotZero(t, trial.ID)

	mm := core.MarkerMotion{
		TrialID:  trial.ID,
		Marker:   "wrist_L",
		ColumnX:  "wrist_L_X",
		ColumnY:  "wrist_L_Y",
		ColumnZ:  "wrist_L_Z",
		Distance: 17,
		Steps:    2,
	}
	require.NoError(t, b.RecordMarkerMotion(&mm))
	assert.NotZero(t, mm.ID)

	trial.FrameCount = 3
	require.NoError(t, b.FinishTrial(&trial))

	var row model.Trial
	require.NoError(t, b.db.DB.First(&row, trial.ID).Error)
	assert.Equal(t, "Trajectories", row.Title)
	assert.Equal(t, 3, row.FrameCount)

	var motions []model.MarkerMotion
	require.NoError(t, b.db.DB.Where("trial_id = ?", trial.ID).Find(&motions).Error)
	require.Len(t, motions, 1)
	assert.Equal(t, "wrist_L", motions[0].Marker)
	assert.Equal(t, 17.0, motions[0].Distance)
}

func TestBackend_StartTrialReusesCachedID(t *testing.T) {
	b := newTestBackend(t)

	first := core.Trial{SourcePath: "/data/trial01.csv"}
	require.NoError(t, b.StartTrial(&first))

	second := core.Trial{SourcePath: "/data/trial01.csv"}
	require.NoError(t, b.StartTrial(&second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, b.db.DB.Model(&model.Trial{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
