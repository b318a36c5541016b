// Package parser reads Vicon "Trajectories" CSV exports.
//
// The export layout is:
//
//	line 1: title ("Trajectories")
//	line 2: sampling frequency in Hz
//	line 3: marker names, sparsely populated (Y/Z cells left blank)
//	line 4: axis tokens (Frame, Sub Frame, then repeating X/Y/Z)
//	line 5: measurement units
//	line 6+: numeric samples, one row per frame
//
// Lines 3 and 4 are flattened into a single row of column labels of the form
// "<marker>_<axis>"; lines 1, 2 and 5 are kept as trial metadata.
package parser

import (
	"strconv"
	"strings"
)

const headerLines = 5

// Axis tokens of the two leading non-marker columns.
const (
	frameLabel    = "Frame"
	subFrameLabel = "Sub Frame"
)

// Header holds everything the five header lines carry.
type Header struct {
	Title      string
	SampleRate float64 // Hz; 0 when the second line does not parse
	Units      []string
	Columns    []string // flattened labels, one per data column
}

// forwardFill replaces each blank cell with the most recent non-blank value
// seen to its left. Leading blanks stay blank. Cells are trimmed first, so a
// cell of spaces counts as blank.
func forwardFill(row []string) []string {
	filled := make([]string, len(row))
	last := ""
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			last = cell
		}
		filled[i] = last
	}
	return filled
}

// FlattenHeader combines the marker-name row and the axis row into flat column
// labels. The result has max(len(markerRow), len(axisRow)) entries; the
// shorter row is padded with empty cells before combining.
func FlattenHeader(markerRow, axisRow []string) []string {
	n := len(markerRow)
	if len(axisRow) > n {
		n = len(axisRow)
	}
	markers := make([]string, n)
	axes := make([]string, n)
	copy(markers, markerRow)
	copy(axes, axisRow)

	markers = forwardFill(markers)

	labels := make([]string, n)
	for i := range labels {
		m := strings.TrimSpace(markers[i])
		a := strings.TrimSpace(axes[i])
		switch {
		case a == frameLabel || a == subFrameLabel:
			labels[i] = a
		case a == "X" || a == "Y" || a == "Z":
			labels[i] = m + "_" + a
		case m != "":
			// stray header cell with no recognized axis token
			labels[i] = m
		default:
			labels[i] = a
		}
	}
	return labels
}

// parseHeader builds a Header from the first five CSV records of a file.
func parseHeader(records [][]string) Header {
	h := Header{}
	if len(records[0]) > 0 {
		h.Title = strings.TrimSpace(records[0][0])
	}
	for _, cell := range records[1] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			h.SampleRate = v
		}
		break
	}
	h.Units = append(h.Units, records[4]...)
	h.Columns = FlattenHeader(records[2], records[3])
	return h
}
