package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	path := writeRecordFile(t, viconFixture)

	h, table, err := ReadFile(path)
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, 100.0, h.SampleRate)
	assert.Equal(t, 2, table.Len())

	xs, ok := table.Column("wrist_L_X")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 3}, xs)

	frames, ok := table.Column("Frame")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, frames)
}

func TestReadFile_UnparsableCellsBecomeNaN(t *testing.T) {
	path := writeRecordFile(t, `Trajectories
100
,,head,,
Frame,Sub Frame,X,Y,Z
,,mm,mm,mm
1,0,1.5,oops,3
2,0,,2.5,3
`)

	_, table, err := ReadFile(path)
	require.NoError(t, err)

	ys, ok := table.Column("head_Y")
	require.True(t, ok)
	assert.True(t, math.IsNaN(ys[0]))
	assert.Equal(t, 2.5, ys[1])

	xs, ok := table.Column("head_X")
	require.True(t, ok)
	assert.Equal(t, 1.5, xs[0])
	assert.True(t, math.IsNaN(xs[1]))
}

func TestReadFile_ShortRowsPadded(t *testing.T) {
	path := writeRecordFile(t, `Trajectories
100
,,head,,
Frame,Sub Frame,X,Y,Z
,,mm,mm,mm
1,0,1,2,3
2,0,4
`)

	_, table, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	ys, ok := table.Column("head_Y")
	require.True(t, ok)
	assert.Equal(t, 2.0, ys[0])
	assert.True(t, math.IsNaN(ys[1]))
}

func TestReadFile_LongRowFails(t *testing.T) {
	path := writeRecordFile(t, `Trajectories
100
,,head,,
Frame,Sub Frame,X,Y,Z
,,mm,mm,mm
1,0,1,2,3,99
`)

	_, _, err := ReadFile(path)
	require.Error(t, err)

	var shapeErr *RowShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 1, shapeErr.Row)
	assert.Equal(t, 6, shapeErr.Fields)
	assert.Equal(t, 5, shapeErr.Want)
}

func TestReadFile_DropsAllMissingColumns(t *testing.T) {
	// the trailing comma on every data row makes a phantom sixth column
	path := writeRecordFile(t, `Trajectories
100
,,head,,,
Frame,Sub Frame,X,Y,Z,
,,mm,mm,mm,
1,0,1,2,3,
2,0,4,5,6,
`)

	_, table, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Frame", "Sub Frame", "head_X", "head_Y", "head_Z"}, table.Columns)
	_, ok := table.Column("")
	assert.False(t, ok)
}

func TestReadFile_InvalidUTF8Tolerated(t *testing.T) {
	content := "Trajectories\n100\n,,t\xffte,,\nFrame,Sub Frame,X,Y,Z\n,,mm,mm,mm\n1,0,1,2,3\n"
	path := writeRecordFile(t, content)

	_, table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Contains(t, table.Columns, "t�te_X")
}

func TestReadFile_BlankMarkerLineKeepsAlignment(t *testing.T) {
	// an empty marker row must still count as header line 3; otherwise the
	// axis row is taken for markers and the first data row for units
	path := writeRecordFile(t, "Trajectories\n100\n\nFrame,Sub Frame,X,Y,Z\n,,mm,mm,mm\n1,0,1,2,3\n")

	h, table, err := ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, h.Units, "mm")
	assert.Equal(t, []string{"Frame", "Sub Frame", "_X", "_Y", "_Z"}, table.Columns)
	require.Equal(t, 1, table.Len())

	frames, ok := table.Column("Frame")
	require.True(t, ok)
	assert.Equal(t, []float64{1}, frames)
}

func TestReadFile_BlankUnitsLine(t *testing.T) {
	path := writeRecordFile(t, "Trajectories\n100\n,,head,,\nFrame,Sub Frame,X,Y,Z\n\n1,0,1,2,3\n")

	h, table, err := ReadFile(path)
	require.NoError(t, err)

	assert.Empty(t, h.Units)
	assert.Equal(t, 1, table.Len())
	_, ok := table.Column("head_X")
	assert.True(t, ok)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, _, err := ReadFile("does/not/exist.csv")
	require.Error(t, err)
}

func TestReadFile_NoDataRows(t *testing.T) {
	path := writeRecordFile(t, "Trajectories\n100\n,,head,,\nFrame,Sub Frame,X,Y,Z\n,,mm,mm,mm\n")

	_, table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	// with zero rows every column is all-missing and gets dropped
	assert.Empty(t, table.Columns)
}
