package motion

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StepStats summarizes the distribution of finite step lengths for a marker.
type StepStats struct {
	Mean   float64
	StdDev float64
	Max    float64
}

// Summarize computes step statistics over the given step lengths. An empty
// input yields the zero StepStats.
func Summarize(steps []float64) StepStats {
	if len(steps) == 0 {
		return StepStats{}
	}
	mean, std := stat.MeanStdDev(steps, nil)
	if len(steps) < 2 {
		// sample standard deviation is undefined for a single step
		std = 0
	}
	return StepStats{
		Mean:   mean,
		StdDev: std,
		Max:    floats.Max(steps),
	}
}
