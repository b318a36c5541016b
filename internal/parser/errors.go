package parser

import "fmt"

// MalformedHeaderError reports a record file whose five-line header could not
// be read: the file is shorter than five lines or a header line is not valid
// delimited text. No partial table is returned alongside it.
type MalformedHeaderError struct {
	Path string
	Line int // 1-based header line at which reading failed
	Err  error
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header in %s at line %d: %v", e.Path, e.Line, e.Err)
}

func (e *MalformedHeaderError) Unwrap() error { return e.Err }

// RowShapeError reports a data row carrying more fields than the reconstructed
// header. Short rows are padded with missing values (trailing-delimiter
// artifacts are common in these exports); extra fields cannot be attributed to
// any column, so they fail the load.
type RowShapeError struct {
	Path   string
	Row    int // 1-based data row index; the first row after the header is 1
	Fields int
	Want   int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d in %s has %d fields, header has %d", e.Row, e.Path, e.Fields, e.Want)
}
