package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)

	logger := slog.New(h)
	logger.Info("Analyzed record file", "frames", 3)

	assert.Contains(t, a.String(), "Analyzed record file")
	assert.Contains(t, a.String(), "frames=3")
	assert.Contains(t, b.String(), `"frames":3`)
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var info, debug bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(h)
	logger.Debug("resolver details")

	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), "resolver details")
}

func TestMultiHandler_IgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)

	slog.New(h).Info("still delivered")
	assert.Contains(t, buf.String(), "still delivered")
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	slog.New(h).With("file", "trial01.csv").Info("loaded")
	assert.Contains(t, buf.String(), "file=trial01.csv")
}
