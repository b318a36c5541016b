package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewZerolog builds the zerolog logger handed to the database and Influx
// managers, writing human-readable output to the console and, when file is
// non-nil, raw JSON lines to the log file.
func NewZerolog(file io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout}
	var w io.Writer = console
	if file != nil {
		w = zerolog.MultiLevelWriter(console, file)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
