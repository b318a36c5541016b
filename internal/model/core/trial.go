// internal/model/core/trial.go
package core

import "time"

// Trial represents one loaded capture session (one Trajectories export file).
type Trial struct {
	ID         uint
	SourcePath string
	Title      string
	SampleRate float64 // Hz, from the second header line
	Units      []string
	FrameCount int
	LoadedAt   time.Time
}

// MarkerMotion holds the derived motion metrics for one marker in one trial.
// Distances are in the trial's coordinate unit; no conversion is applied.
type MarkerMotion struct {
	ID             uint
	TrialID        uint
	Marker         string // caller-supplied token, e.g. "poignet_D"
	ColumnX        string // resolved column labels; empty means the axis was absent
	ColumnY        string
	ColumnZ        string
	Distance       float64 // cumulative 3D path length (Quantity of Motion)
	PlanarDistance float64 // ground-track (XY) path length
	Steps          int     // finite frame-to-frame steps included in the sum
	StepMean       float64
	StepStdDev     float64
	StepMax        float64
	Trajectory     []byte // WKB line string of the finite samples, may be nil
}

// Resolved reports whether all three axis columns were found for the marker.
func (m *MarkerMotion) Resolved() bool {
	return m.ColumnX != "" && m.ColumnY != "" && m.ColumnZ != ""
}
