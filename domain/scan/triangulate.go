package scan

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// DefaultIncidenceDeg is the default laser incidence angle φ in degrees.
const DefaultIncidenceDeg = 30.0

// Triangulator converts ROI-relative stripe detections into 3D points.
// It is immutable and safe to share.
type Triangulator struct {
	sinPhi float64
}

// NewTriangulator converts φ from degrees once and rejects angles whose sine is zero.
func NewTriangulator(incidenceDeg float64) (*Triangulator, error) {
	s := math.Sin(incidenceDeg * math.Pi / 180)
	if math.IsNaN(s) || math.Abs(s) < 1e-12 {
		return nil, fmt.Errorf("%w: %v degrees", ErrIncidenceAngle, incidenceDeg)
	}
	return &Triangulator{sinPhi: s}, nil
}

// Point maps (row, column) at rotation theta (radians) to
// s = column/sin φ, (s cos θ, s sin θ, row/2).
func (t *Triangulator) Point(row, column int, theta float64) r3.Vector {
	s := float64(column) / t.sinPhi
	return r3.Vector{
		X: s * math.Cos(theta),
		Y: s * math.Sin(theta),
		Z: float64(row) / 2.0,
	}
}

// Points triangulates every found detection, skipping NotFound rows.
func (t *Triangulator) Points(ds []Detection, theta float64) []r3.Vector {
	out := make([]r3.Vector, 0, len(ds))
	for _, d := range ds {
		if !d.Found() {
			continue
		}
		out = append(out, t.Point(d.Row, d.Column, theta))
	}
	return out
}

// AngleTable returns n evenly spaced rotation angles i*2π/n.
func AngleTable(n int) []float64 {
	if n <= 0 {
		return nil
	}
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = float64(i) * 2 * math.Pi / float64(n)
	}
	return angles
}
