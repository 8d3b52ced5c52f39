package scan

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat"
)

// PointCloud is an append-only ordered point set for one recording pass.
type PointCloud struct {
	points []r3.Vector
}

// Append adds points in order.
func (pc *PointCloud) Append(ps ...r3.Vector) { pc.points = append(pc.points, ps...) }

// Reset empties the cloud.
func (pc *PointCloud) Reset() { pc.points = nil }

// Len returns the number of points.
func (pc *PointCloud) Len() int { return len(pc.points) }

// Points returns a copy of the points in insertion order.
func (pc *PointCloud) Points() []r3.Vector {
	out := make([]r3.Vector, len(pc.points))
	copy(out, pc.points)
	return out
}

// Summary describes the extent of a cloud.
type Summary struct {
	Count      int
	Min, Max   r3.Vector
	MeanRadius float64 // mean distance from the rotation axis in the XY plane
}

// Summary computes the bounding box and mean radial distance.
func (pc *PointCloud) Summary() Summary {
	s := Summary{Count: len(pc.points)}
	if s.Count == 0 {
		return s
	}
	s.Min = r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	s.Max = r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	radii := make([]float64, len(pc.points))
	for i, p := range pc.points {
		s.Min = r3.Vector{X: math.Min(s.Min.X, p.X), Y: math.Min(s.Min.Y, p.Y), Z: math.Min(s.Min.Z, p.Z)}
		s.Max = r3.Vector{X: math.Max(s.Max.X, p.X), Y: math.Max(s.Max.Y, p.Y), Z: math.Max(s.Max.Z, p.Z)}
		radii[i] = math.Hypot(p.X, p.Y)
	}
	s.MeanRadius = stat.Mean(radii, nil)
	return s
}
