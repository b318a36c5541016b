// internal/storage/storage.go
package storage

import "github.com/quantmotion/qdm/internal/model/core"

// Backend is the interface all results stores must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Trial management. StartTrial assigns an ID to the passed pointer.
	StartTrial(t *core.Trial) error
	FinishTrial(t *core.Trial) error

	// Result recording
	RecordMarkerMotion(m *core.MarkerMotion) error
}

// Uploadable is an optional interface for backends that produce files
// suitable for upload to a results server.
type Uploadable interface {
	ExportedFiles() []string
}
