// internal/model/model.go
package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/quantmotion/qdm/internal/model/core"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels lists every struct that represents a table in the results
// database schema, in migration order.
var DatabaseModels = []interface{}{
	&Trial{},
	&MarkerMotion{},
}

// Trial is the persisted form of core.Trial.
type Trial struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	SourcePath string `gorm:"index"`
	Title      string
	SampleRate float64
	Units      datatypes.JSON
	FrameCount int
}

// MarkerMotion is the persisted form of core.MarkerMotion.
type MarkerMotion struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	TrialID        uint   `gorm:"index"`
	Marker         string `gorm:"index"`
	ColumnX        string
	ColumnY        string
	ColumnZ        string
	Distance       float64
	PlanarDistance float64
	Steps          int
	StepMean       float64
	StepStdDev     float64
	StepMax        float64
	Trajectory     []byte // WKB
}

// TrialFromCore converts a core.Trial for insertion.
func TrialFromCore(t *core.Trial) Trial {
	units, _ := json.Marshal(t.Units)
	return Trial{
		SourcePath: t.SourcePath,
		Title:      t.Title,
		SampleRate: t.SampleRate,
		Units:      units,
		FrameCount: t.FrameCount,
	}
}

// MarkerMotionFromCore converts a core.MarkerMotion for insertion under the
// given trial row ID.
func MarkerMotionFromCore(m *core.MarkerMotion, trialID uint) MarkerMotion {
	return MarkerMotion{
		TrialID:        trialID,
		Marker:         m.Marker,
		ColumnX:        m.ColumnX,
		ColumnY:        m.ColumnY,
		ColumnZ:        m.ColumnZ,
		Distance:       m.Distance,
		PlanarDistance: m.PlanarDistance,
		Steps:          m.Steps,
		StepMean:       m.StepMean,
		StepStdDev:     m.StepStdDev,
		StepMax:        m.StepMax,
		Trajectory:     m.Trajectory,
	}
}
