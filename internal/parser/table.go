package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/quantmotion/qdm/internal/util"
)

// Table is the flat, analyzable form of a record file: one label per column
// and one float64 row per frame. Missing or unparsable cells are NaN.
type Table struct {
	Columns []string
	rows    [][]float64
}

// Len returns the number of data rows (frames).
func (t *Table) Len() int { return len(t.rows) }

// Column returns the values of the column with the given label, in row order.
// The second return is false when no such column exists.
func (t *Table) Column(label string) ([]float64, bool) {
	for i, c := range t.Columns {
		if c == label {
			vals := make([]float64, len(t.rows))
			for r, row := range t.rows {
				vals[r] = row[i]
			}
			return vals, true
		}
	}
	return nil, false
}

// dropEmptyColumns removes columns whose every cell is NaN. Extra delimiters
// at line ends produce phantom columns with no data; pruning them after the
// permissive parse keeps load failures and data-quality filtering separate.
func (t *Table) dropEmptyColumns() *Table {
	keep := make([]int, 0, len(t.Columns))
	for i := range t.Columns {
		for _, row := range t.rows {
			if !math.IsNaN(row[i]) {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}
	out := &Table{Columns: make([]string, len(keep)), rows: make([][]float64, len(t.rows))}
	for j, i := range keep {
		out.Columns[j] = t.Columns[i]
	}
	for r, row := range t.rows {
		newRow := make([]float64, len(keep))
		for j, i := range keep {
			newRow[j] = row[i]
		}
		out.rows[r] = newRow
	}
	return out
}

// readContent reads a record file up front so invalid byte sequences can be
// substituted before parsing; exports are bounded by session length, not
// unbounded streams.
func readContent(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading record file: %w", err)
	}
	return util.SanitizeUTF8(raw), nil
}

// splitHeader consumes the five physical header lines from content and
// returns their records plus the remaining data portion. Lines are split
// before CSV parsing: encoding/csv silently skips fully blank lines, which
// would shift every following header line up one and misalign the table. A
// blank header line is kept as an empty record instead.
func splitHeader(content, path string) ([][]string, string, error) {
	records := make([][]string, 0, headerLines)
	rest := content
	for i := 0; i < headerLines; i++ {
		line, remainder, found := strings.Cut(rest, "\n")
		if !found && line == "" {
			return nil, "", &MalformedHeaderError{Path: path, Line: i + 1, Err: io.ErrUnexpectedEOF}
		}
		rest = remainder
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			records = append(records, nil)
			continue
		}
		cr := csv.NewReader(strings.NewReader(line))
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		rec, err := cr.Read()
		if err != nil {
			return nil, "", &MalformedHeaderError{Path: path, Line: i + 1, Err: err}
		}
		records = append(records, rec)
	}
	return records, rest, nil
}

// ReadHeader reads only the five-line header of a record file.
func ReadHeader(path string) (Header, error) {
	content, err := readContent(path)
	if err != nil {
		return Header{}, err
	}
	records, _, err := splitHeader(content, path)
	if err != nil {
		return Header{}, err
	}
	return parseHeader(records), nil
}

// ReadFile loads a record file into a Table using the reconstructed header
// labels. Cells that do not parse as numbers become NaN; rows shorter than
// the header are padded with NaN; rows longer than the header fail with a
// RowShapeError. Columns that are missing in every row are dropped.
func ReadFile(path string) (Header, *Table, error) {
	content, err := readContent(path)
	if err != nil {
		return Header{}, nil, err
	}
	records, rest, err := splitHeader(content, path)
	if err != nil {
		return Header{}, nil, err
	}
	header := parseHeader(records)

	cr := csv.NewReader(strings.NewReader(rest))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	cols := header.Columns
	rows := make([][]float64, 0, 256)
	for rowIdx := 1; ; rowIdx++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Header{}, nil, fmt.Errorf("reading data row %d of %s: %w", rowIdx, path, err)
		}
		if len(rec) > len(cols) {
			return Header{}, nil, &RowShapeError{Path: path, Row: rowIdx, Fields: len(rec), Want: len(cols)}
		}
		row := make([]float64, len(cols))
		for i := range row {
			if i < len(rec) {
				row[i] = util.ParseSample(rec[i])
			} else {
				row[i] = math.NaN()
			}
		}
		rows = append(rows, row)
	}

	table := (&Table{Columns: cols, rows: rows}).dropEmptyColumns()
	return header, table, nil
}

// NewTable builds a Table directly from labels and rows. Rows must all have
// len(columns) values; it is intended for tests and derived tables.
func NewTable(columns []string, rows [][]float64) *Table {
	return &Table{Columns: columns, rows: rows}
}
