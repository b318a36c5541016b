// Package geo converts marker trajectories into geometry values for storage
// and reporting.
//
// Coordinates stay in the rig's local Cartesian frame (millimeters); there is
// no geodetic reference system involved. Trajectories are stored in WKB so
// SQLite and Postgres backends can hold them without spatial extensions.
package geo

import (
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/quantmotion/qdm/internal/model/core"
)

// TrajectoryLineString builds an XYZ line string from the finite samples of a
// marker trajectory. Points with any non-finite coordinate are skipped, the
// same frames the motion metrics exclude. Fewer than two finite points is an
// error: a line needs two vertices.
func TrajectoryLineString(points []core.Position3D) (geom.LineString, error) {
	flat := make([]float64, 0, len(points)*3)
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			continue
		}
		flat = append(flat, p.X, p.Y, p.Z)
	}
	if len(flat) < 6 {
		return geom.LineString{}, fmt.Errorf("trajectory has %d finite points, need at least 2", len(flat)/3)
	}
	seq := geom.NewSequence(flat, geom.DimXYZ)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building trajectory line string: %w", err)
	}
	return ls, nil
}

// PlanarLength returns the 2D (ground-track) path length of a trajectory,
// ignoring the Z axis. It is the planar companion to the 3D Quantity of
// Motion.
func PlanarLength(ls geom.LineString) float64 {
	return ls.Length()
}

// TrajectoryWKB encodes a trajectory line string in WKB for storage.
func TrajectoryWKB(ls geom.LineString) []byte {
	return ls.AsBinary()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
