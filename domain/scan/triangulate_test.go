package scan

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestTriangulatorKnownPoint(t *testing.T) {
	tri, err := NewTriangulator(30)
	if err != nil {
		t.Fatalf("new triangulator: %v", err)
	}
	got := tri.Point(10, 5, 0)
	want := r3.Vector{X: 10, Y: 0, Z: 5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("point mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangulatorIsDeterministic(t *testing.T) {
	tri, _ := NewTriangulator(DefaultIncidenceDeg)
	a := tri.Point(17, 42, 1.234)
	for i := 0; i < 10; i++ {
		if b := tri.Point(17, 42, 1.234); a != b {
			t.Fatalf("run %d: %v != %v", i, b, a)
		}
	}
}

func TestTriangulatorRejectsZeroSine(t *testing.T) {
	for _, deg := range []float64{0, 180, -360, math.NaN()} {
		if _, err := NewTriangulator(deg); !errors.Is(err, ErrIncidenceAngle) {
			t.Fatalf("angle %v: expected ErrIncidenceAngle, got %v", deg, err)
		}
	}
}

func TestTriangulatorPointsSkipsNotFound(t *testing.T) {
	tri, _ := NewTriangulator(30)
	ds := []Detection{{Row: 0, Column: 3}, {Row: 1, Column: NotFound}, {Row: 2, Column: 0}, {Row: 4, Column: 1}}
	got := tri.Points(ds, math.Pi/2)
	want := []r3.Vector{{X: 0, Y: 6, Z: 0}, {X: 0, Y: 2, Z: 2}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAngleTable(t *testing.T) {
	got := AngleTable(4)
	want := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("angles mismatch (-want +got):\n%s", diff)
	}
	if AngleTable(0) != nil {
		t.Fatalf("empty table expected for n=0")
	}
}
