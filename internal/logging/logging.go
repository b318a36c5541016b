// Package logging wires slog-based logging for the analyzer: console and
// file text handlers fanned out through a MultiHandler, an optional Graylog
// sink, and a zerolog bridge for components that log through zerolog.
package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, name string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", name, sessionStart.Format("20060102_150405")),
	)
}
