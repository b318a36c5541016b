package worker

import (
	"sort"
	"sync"

	"github.com/quantmotion/qdm/internal/model/core"
)

// TrialResult is the outcome of analyzing one record file. Err is set when
// the file could not be loaded; Motions then stays empty.
type TrialResult struct {
	Trial   core.Trial
	Motions []core.MarkerMotion
	Err     error
}

// Collector aggregates results from concurrent file analyses. Files finish in
// arbitrary order; Results returns them sorted by source path so reports and
// summaries are deterministic.
type Collector struct {
	mu      sync.Mutex
	results []TrialResult
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one file's result.
func (c *Collector) Add(r TrialResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

// Results returns all results sorted by source path.
func (c *Collector) Results() []TrialResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TrialResult, len(c.results))
	copy(out, c.results)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Trial.SourcePath < out[j].Trial.SourcePath
	})
	return out
}

// Failed returns the results whose files could not be loaded.
func (c *Collector) Failed() []TrialResult {
	var failed []TrialResult
	for _, r := range c.Results() {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
