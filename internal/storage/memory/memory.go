// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/quantmotion/qdm/internal/config"
	"github.com/quantmotion/qdm/internal/model/core"
)

// TrialRecord groups a trial with its per-marker results.
type TrialRecord struct {
	Trial   core.Trial          `json:"trial"`
	Markers []core.MarkerMotion `json:"markers"`
}

// Backend stores results in memory and exports each finished trial to JSON.
type Backend struct {
	cfg config.MemoryConfig

	trials    map[uint]*TrialRecord
	idCounter uint
	exported  []string
	mu        sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		trials: make(map[uint]*TrialRecord),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartTrial registers a trial and assigns it an ID.
func (b *Backend) StartTrial(t *core.Trial) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	t.ID = b.idCounter
	b.trials[t.ID] = &TrialRecord{
		Trial:   *t,
		Markers: make([]core.MarkerMotion, 0),
	}
	return nil
}

// RecordMarkerMotion appends a marker result to its trial.
func (b *Backend) RecordMarkerMotion(m *core.MarkerMotion) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.trials[m.TrialID]
	if !ok {
		return errUnknownTrial(m.TrialID)
	}
	b.idCounter++
	m.ID = b.idCounter
	rec.Markers = append(rec.Markers, *m)
	return nil
}

// FinishTrial exports the trial's results as JSON.
func (b *Backend) FinishTrial(t *core.Trial) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.trials[t.ID]
	if !ok {
		return errUnknownTrial(t.ID)
	}
	rec.Trial = *t

	path, err := b.exportJSON(rec)
	if err != nil {
		return err
	}
	b.exported = append(b.exported, path)
	return nil
}

// ExportedFiles returns the paths of all exported trial files.
func (b *Backend) ExportedFiles() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.exported))
	copy(out, b.exported)
	return out
}

// Trials returns a snapshot of all recorded trials, for tests and reporting.
func (b *Backend) Trials() []TrialRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]TrialRecord, 0, len(b.trials))
	for _, rec := range b.trials {
		out = append(out, *rec)
	}
	return out
}
