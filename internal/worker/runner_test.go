package worker

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmotion/qdm/internal/config"
	"github.com/quantmotion/qdm/internal/storage/memory"
)

const recordFixture = `Trajectories
100
,,wrist_L,,,forearm,,
Frame,Sub Frame,X,Y,Z,X,Y,Z
,,mm,mm,mm,mm,mm,mm
1,0,0,0,0,10,10,10
2,0,3,4,0,10,10,10
3,0,3,4,12,10,10,10
`

func writeRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestRunner(t *testing.T, backend *memory.Backend, tokens []string) *Runner {
	t.Helper()
	r, err := NewRunner(Dependencies{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
	}, tokens, 2)
	require.NoError(t, err)
	return r
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	one := writeRecord(t, dir, "one.csv", recordFixture)
	two := writeRecord(t, dir, "two.csv", recordFixture)

	backend := memory.New(config.MemoryConfig{OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, backend.Init())

	runner := newTestRunner(t, backend, []string{"wrist_L", "forearm", "ankle"})
	results := runner.Run(context.Background(), []string{two, one}).Results()

	require.Len(t, results, 2)
	// sorted by source path regardless of completion order
	assert.Equal(t, one, results[0].Trial.SourcePath)
	assert.Equal(t, two, results[1].Trial.SourcePath)

	for _, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, "Trajectories", res.Trial.Title)
		assert.Equal(t, 100.0, res.Trial.SampleRate)
		assert.Equal(t, 3, res.Trial.FrameCount)

		// "ankle" is absent from the fixture and silently skipped
		require.Len(t, res.Motions, 2)

		wrist := res.Motions[0]
		assert.Equal(t, "wrist_L", wrist.Marker)
		assert.InDelta(t, 17.0, wrist.Distance, 1e-9) // 3-4-5 step then 12 up
		assert.Equal(t, 2, wrist.Steps)
		assert.InDelta(t, 5.0, wrist.PlanarDistance, 1e-9)
		assert.NotEmpty(t, wrist.Trajectory)

		stationary := res.Motions[1]
		assert.Equal(t, "forearm", stationary.Marker)
		assert.Zero(t, stationary.Distance)
		assert.Equal(t, 2, stationary.Steps)
	}

	// both trials exported by the backend
	assert.Len(t, backend.ExportedFiles(), 2)
}

func TestRunner_LoadFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeRecord(t, dir, "good.csv", recordFixture)
	bad := writeRecord(t, dir, "bad.csv", "Trajectories\n100\n")

	backend := memory.New(config.MemoryConfig{OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, backend.Init())

	runner := newTestRunner(t, backend, []string{"wrist_L"})
	collector := runner.Run(context.Background(), []string{good, bad, "missing.csv"})

	results := collector.Results()
	require.Len(t, results, 3)

	failed := collector.Failed()
	require.Len(t, failed, 2)
	for _, res := range failed {
		assert.Error(t, res.Err)
		assert.Empty(t, res.Motions)
	}

	// only the loadable trial reaches storage
	assert.Len(t, backend.ExportedFiles(), 1)
}

func TestRunner_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, "one.csv", recordFixture)

	backend := memory.New(config.MemoryConfig{OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, backend.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := newTestRunner(t, backend, []string{"wrist_L"})
	results := runner.Run(ctx, []string{path}).Results()
	assert.Empty(t, results)
}
