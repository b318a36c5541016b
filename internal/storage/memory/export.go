// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func errUnknownTrial(id uint) error {
	return fmt.Errorf("unknown trial ID %d", id)
}

// exportJSON writes one trial record to the output directory, gzipped when
// configured. Returns the written file path. Caller holds the lock.
func (b *Backend) exportJSON(rec *TrialRecord) (string, error) {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(rec.Trial.SourcePath), filepath.Ext(rec.Trial.SourcePath))
	if base == "" {
		base = fmt.Sprintf("trial_%d", rec.Trial.ID)
	}
	name := base + ".qdm.json"
	if b.cfg.CompressOutput {
		name += ".gz"
	}
	path := filepath.Join(b.cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling trial record: %w", err)
	}

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			return "", fmt.Errorf("writing export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("closing gzip writer: %w", err)
		}
	} else if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	return path, nil
}
