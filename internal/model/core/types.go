// internal/model/core/types.go
package core

// Position3D represents a point in the capture volume, in the units the rig
// exported (typically millimeters). Axes are the lab's Cartesian frame.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
