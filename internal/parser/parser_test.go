package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// viconFixture is a minimal two-marker Trajectories export.
const viconFixture = `Trajectories
100
,,wrist_L,,,forearm,,
Frame,Sub Frame,X,Y,Z,X,Y,Z
,,mm,mm,mm,mm,mm,mm
1,0,0,0,0,10,10,10
2,0,3,4,0,10,10,10
`

func writeRecordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trial01.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
