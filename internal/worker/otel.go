package worker

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/quantmotion/qdm/internal/worker"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics holds the runner's OTel instruments. They come from the global
// meter provider, so they are no-ops unless the host process installs one.
type metrics struct {
	filesProcessed metric.Int64Counter
	filesFailed    metric.Int64Counter
	rowsLoaded     metric.Int64Counter
	markersMissing metric.Int64Counter
	stepsSkipped   metric.Int64Counter
}

func newMetrics() (metrics, error) {
	m := meter()
	var (
		ms  metrics
		err error
	)

	if ms.filesProcessed, err = m.Int64Counter(
		"analysis.files.processed",
		metric.WithDescription("Record files analyzed successfully"),
	); err != nil {
		return ms, err
	}
	if ms.filesFailed, err = m.Int64Counter(
		"analysis.files.failed",
		metric.WithDescription("Record files that failed to load"),
	); err != nil {
		return ms, err
	}
	if ms.rowsLoaded, err = m.Int64Counter(
		"analysis.rows.loaded",
		metric.WithDescription("Sample rows loaded across all files"),
	); err != nil {
		return ms, err
	}
	if ms.markersMissing, err = m.Int64Counter(
		"analysis.markers.missing",
		metric.WithDescription("Marker tokens with no resolvable columns"),
	); err != nil {
		return ms, err
	}
	if ms.stepsSkipped, err = m.Int64Counter(
		"analysis.steps.skipped",
		metric.WithDescription("Frame-to-frame steps excluded for non-finite values"),
	); err != nil {
		return ms, err
	}
	return ms, nil
}
