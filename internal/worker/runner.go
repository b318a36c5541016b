// Package worker runs the per-file analysis pipeline: load a record file,
// resolve each configured marker token, derive motion metrics, and hand the
// results to storage and metric sinks. Files are independent, so the runner
// fans out across them; nothing shares an in-progress table.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quantmotion/qdm/internal/geo"
	"github.com/quantmotion/qdm/internal/influx"
	"github.com/quantmotion/qdm/internal/marker"
	"github.com/quantmotion/qdm/internal/model/core"
	"github.com/quantmotion/qdm/internal/motion"
	"github.com/quantmotion/qdm/internal/parser"
	"github.com/quantmotion/qdm/internal/storage"
)

// Dependencies holds everything the runner needs.
type Dependencies struct {
	Logger  *slog.Logger
	Backend storage.Backend
	Influx  *influx.Manager // optional; nil disables the metrics sink
}

// Runner analyzes record files for a fixed marker vocabulary.
type Runner struct {
	deps        Dependencies
	tokens      []string
	concurrency int
	metrics     metrics
}

// NewRunner creates a runner. concurrency bounds the number of files analyzed
// at once; values below 1 are treated as 1.
func NewRunner(deps Dependencies, tokens []string, concurrency int) (*Runner, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	ms, err := newMetrics()
	if err != nil {
		return nil, err
	}
	return &Runner{
		deps:        deps,
		tokens:      tokens,
		concurrency: concurrency,
		metrics:     ms,
	}, nil
}

// Run analyzes all paths and returns the collected results. A file that fails
// to load is reported in its TrialResult and does not stop the batch. Run
// returns early results when ctx is cancelled; files not yet started are
// skipped.
func (r *Runner) Run(ctx context.Context, paths []string) *Collector {
	collector := NewCollector()
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			collector.Add(r.processFile(ctx, path))
		}(path)
	}

	wg.Wait()
	return collector
}

// processFile runs the full pipeline for one record file.
func (r *Runner) processFile(ctx context.Context, path string) TrialResult {
	log := r.deps.Logger.With("file", path)

	header, table, err := parser.ReadFile(path)
	if err != nil {
		r.metrics.filesFailed.Add(ctx, 1)
		log.Error("Failed to load record file", "error", err)
		return TrialResult{Trial: core.Trial{SourcePath: path}, Err: err}
	}
	r.metrics.filesProcessed.Add(ctx, 1)
	r.metrics.rowsLoaded.Add(ctx, int64(table.Len()))

	trial := core.Trial{
		SourcePath: path,
		Title:      header.Title,
		SampleRate: header.SampleRate,
		Units:      header.Units,
		FrameCount: table.Len(),
		LoadedAt:   time.Now(),
	}

	stored := true
	if err := r.deps.Backend.StartTrial(&trial); err != nil {
		// results are still computed and reported; only persistence is lost
		log.Error("Failed to register trial in storage", "error", err)
		stored = false
	}

	result := TrialResult{Trial: trial}
	for _, token := range r.tokens {
		mm, ok := r.analyzeMarker(ctx, table, token, &trial, log)
		if !ok {
			continue
		}
		result.Motions = append(result.Motions, mm)

		if stored {
			if err := r.deps.Backend.RecordMarkerMotion(&mm); err != nil {
				log.Error("Failed to store marker motion", "marker", token, "error", err)
			}
		}
		if r.deps.Influx != nil {
			if err := r.deps.Influx.WriteMarkerMotion(&trial, &mm); err != nil {
				log.Warn("Failed to ship marker metrics", "marker", token, "error", err)
			}
		}
	}

	if stored {
		if err := r.deps.Backend.FinishTrial(&trial); err != nil {
			log.Error("Failed to finalize trial in storage", "error", err)
		}
	}

	log.Info("Analyzed record file",
		"frames", table.Len(),
		"markers", len(result.Motions),
		"sampleRate", header.SampleRate)
	return result
}

// analyzeMarker resolves one token and derives its motion metrics. Returns
// ok=false when the marker is not present in the table; absence is expected
// for vocabularies shared across heterogeneous trials.
func (r *Runner) analyzeMarker(ctx context.Context, table *parser.Table, token string, trial *core.Trial, log *slog.Logger) (core.MarkerMotion, bool) {
	cols := marker.Resolve(table.Columns, token)
	if !cols.Complete() {
		r.metrics.markersMissing.Add(ctx, 1)
		log.Debug("Marker not resolvable in this file", "marker", token,
			"x", cols.X, "y", cols.Y, "z", cols.Z)
		return core.MarkerMotion{}, false
	}

	points := motion.Trajectory(table, cols)
	steps := motion.StepLengths(points)
	q := motion.FromSteps(steps)
	stats := motion.Summarize(steps)

	if possible := table.Len() - 1; possible > len(steps) && possible > 0 {
		r.metrics.stepsSkipped.Add(ctx, int64(possible-len(steps)))
	}

	mm := core.MarkerMotion{
		TrialID:    trial.ID,
		Marker:     token,
		ColumnX:    cols.X,
		ColumnY:    cols.Y,
		ColumnZ:    cols.Z,
		Distance:   q.Distance,
		Steps:      q.Steps,
		StepMean:   stats.Mean,
		StepStdDev: stats.StdDev,
		StepMax:    stats.Max,
	}

	if ls, err := geo.TrajectoryLineString(points); err == nil {
		mm.PlanarDistance = geo.PlanarLength(ls)
		mm.Trajectory = geo.TrajectoryWKB(ls)
	}

	return mm, true
}
