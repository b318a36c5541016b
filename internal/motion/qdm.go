// Package motion derives kinematic metrics from marker trajectories.
package motion

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/quantmotion/qdm/internal/marker"
	"github.com/quantmotion/qdm/internal/model/core"
	"github.com/quantmotion/qdm/internal/parser"
)

// Quantity is the Quantity of Motion (QdM) result for one marker: the
// cumulative 3D path length across consecutive frames, in the table's
// coordinate unit, and the number of finite steps included in the sum.
type Quantity struct {
	Distance float64
	Steps    int
}

// Trajectory extracts the marker's samples as 3D points in row order.
// Frames with a missing coordinate are included as NaN points; consumers
// decide how to treat gaps. Returns nil when any axis column is absent.
func Trajectory(t *parser.Table, cols marker.Triple) []core.Position3D {
	xs, okX := t.Column(cols.X)
	ys, okY := t.Column(cols.Y)
	zs, okZ := t.Column(cols.Z)
	if !okX || !okY || !okZ {
		return nil
	}
	points := make([]core.Position3D, len(xs))
	for i := range points {
		points[i] = core.Position3D{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return points
}

// StepLengths returns the Euclidean distances between temporally consecutive
// samples, keeping only finite steps. A step is excluded when either endpoint
// has a missing coordinate or the distance itself is not finite; exclusion
// reduces the step count, it never fails the computation.
func StepLengths(points []core.Position3D) []float64 {
	if len(points) < 2 {
		return nil
	}
	steps := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		dz := points[i].Z - points[i-1].Z
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		steps = append(steps, d)
	}
	return steps
}

// FromSteps sums precomputed step lengths into a Quantity.
func FromSteps(steps []float64) Quantity {
	if len(steps) == 0 {
		return Quantity{}
	}
	return Quantity{Distance: floats.Sum(steps), Steps: len(steps)}
}

// QuantityOfMotion computes the QdM for the marker columns in cols. Tables
// with fewer than two rows, and triples with any unresolved axis, yield the
// zero Quantity.
func QuantityOfMotion(t *parser.Table, cols marker.Triple) Quantity {
	return FromSteps(StepLengths(Trajectory(t, cols)))
}
