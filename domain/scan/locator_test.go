package scan

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocatorLeftmostMaximumPerRow(t *testing.T) {
	frame := synthFrame(10, 3, 255, image.Pt(4, 0), image.Pt(6, 0), image.Pt(2, 1))
	// below the band
	frame.Pix[frame.PixOffset(8, 2)] = 30
	got := NewLocator().Locate(frame, image.Rect(2, 0, 10, 3), Threshold{Low: 65, High: 255})
	want := []Detection{
		{Row: 0, Column: 2},
		{Row: 1, Column: NotFound}, // stripe on the roi edge is column 0
		{Row: 2, Column: NotFound},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detections mismatch (-want +got):\n%s", diff)
	}
}

func TestLocatorUpperBoundExcludesBrightPixels(t *testing.T) {
	frame := synthFrame(10, 1, 255, image.Pt(3, 0))
	frame.Pix[frame.PixOffset(7, 0)] = 150
	got := NewLocator().Locate(frame, image.Rect(1, 0, 10, 1), Threshold{Low: 100, High: 200})
	if len(got) != 1 || got[0].Column != 6 {
		t.Fatalf("expected column 6 for in-band pixel, got %+v", got)
	}
}

func TestLocatorClipsROIToFrame(t *testing.T) {
	frame := synthFrame(10, 3, 255, image.Pt(5, 1), image.Pt(1, 2))
	got := NewLocator().Locate(frame, image.Rect(2, 1, 20, 10), Threshold{Low: 65, High: 255})
	want := []Detection{{Row: 0, Column: 3}, {Row: 1, Column: NotFound}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detections mismatch (-want +got):\n%s", diff)
	}

	// column stays relative to the roi even when its left edge is outside the frame
	got = NewLocator().Locate(frame, image.Rect(-3, 2, 5, 3), Threshold{Low: 65, High: 255})
	if len(got) != 1 || got[0] != (Detection{Row: 0, Column: 4}) {
		t.Fatalf("unexpected detections %+v", got)
	}
}

func TestLocatorEmptyInputs(t *testing.T) {
	l := NewLocator()
	th := Threshold{Low: 65, High: 255}
	if got := l.Locate(nil, image.Rect(0, 0, 2, 2), th); got != nil {
		t.Fatalf("nil frame: %+v", got)
	}
	frame := synthFrame(4, 4, 255)
	if got := l.Locate(frame, image.Rectangle{}, th); got != nil {
		t.Fatalf("empty roi: %+v", got)
	}
	if got := l.Locate(frame, image.Rect(10, 10, 20, 20), th); got != nil {
		t.Fatalf("roi outside frame: %+v", got)
	}
}

func TestLocatorMask(t *testing.T) {
	frame := synthFrame(6, 2, 255, image.Pt(0, 0), image.Pt(5, 1))
	frame.Pix[frame.PixOffset(2, 0)] = 10
	mask := NewLocator().Mask(frame, Threshold{Low: 65, High: 255})
	if mask.Bounds() != frame.Bounds() {
		t.Fatalf("mask bounds %v, want %v", mask.Bounds(), frame.Bounds())
	}
	on := 0
	for _, v := range mask.Pix {
		switch v {
		case 255:
			on++
		case 0:
		default:
			t.Fatalf("mask is not binary: %d", v)
		}
	}
	if on != 2 || mask.GrayAt(0, 0).Y != 255 || mask.GrayAt(5, 1).Y != 255 {
		t.Fatalf("unexpected mask %v", mask.Pix)
	}
}
