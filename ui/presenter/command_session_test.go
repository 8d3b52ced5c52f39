package presenter

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/soocke/lscan-go/domain/scan"
)

// blankFrames serves n black 16x4 frames; the axis of a 16 px frame sits at column 8.
type blankFrames int

func (n blankFrames) Len() int                       { return int(n) }
func (n blankFrames) Frame(int) (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 16, 4)), nil }
func (n blankFrames) Name(i int) string              { return fmt.Sprintf("frame-%d.png", i) }

type nopExporter struct{}

func (nopExporter) Export([]r3.Vector) error { return nil }

func newBlankSession(t *testing.T) *scan.Session {
	t.Helper()
	s, err := scan.NewSession(nil, blankFrames(2), nil, nil, nil, nopExporter{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestCommandPresenter_RejectedROIKeepsCurrent(t *testing.T) {
	sess := newBlankSession(t)
	view := &mockView{}
	p := NewCommandPresenter(sess, view, nil)
	if err := p.ROI("10,0", "14,3"); err != nil {
		t.Fatalf("roi: %v", err)
	}
	want := image.Rect(10, 0, 14, 3)
	if err := p.ROI("2,0", "6,3"); !errors.Is(err, scan.ErrAnchorLeftOfAxis) {
		t.Fatalf("expected ErrAnchorLeftOfAxis, got %v", err)
	}
	if got := sess.Settings().ROI(); got != want {
		t.Fatalf("roi = %v after rejected replace, want %v", got, want)
	}
	if err := p.Rect(image.Rect(1, 1, 5, 3)); !errors.Is(err, scan.ErrAnchorLeftOfAxis) {
		t.Fatalf("expected ErrAnchorLeftOfAxis, got %v", err)
	}
	if got := sess.Settings().ROI(); got != want {
		t.Fatalf("roi = %v after rejected rect, want %v", got, want)
	}
	if err := p.Rect(image.Rect(9, 1, 12, 3)); err != nil {
		t.Fatalf("rect: %v", err)
	}
	if got := sess.Settings().ROI(); got != image.Rect(9, 1, 12, 3) {
		t.Fatalf("roi = %v", got)
	}
}

func TestCommandPresenter_RejectedBandKeepsThreshold(t *testing.T) {
	sess := newBlankSession(t)
	view := &mockView{}
	p := NewCommandPresenter(sess, view, nil)
	initial := scan.Threshold{Low: 65, High: 255}
	if err := p.Threshold("100", "300"); !errors.Is(err, scan.ErrThresholdRange) {
		t.Fatalf("expected ErrThresholdRange, got %v", err)
	}
	if err := p.Threshold("30", "20"); !errors.Is(err, scan.ErrThresholdOrder) {
		t.Fatalf("expected ErrThresholdOrder, got %v", err)
	}
	if got := sess.Settings().Threshold(); got != initial {
		t.Fatalf("threshold = %+v after rejected bands, want %+v", got, initial)
	}
	// both bounds below the current low
	if err := p.Threshold("10", "20"); err != nil {
		t.Fatalf("threshold: %v", err)
	}
	if got := sess.Settings().Threshold(); got != (scan.Threshold{Low: 10, High: 20}) {
		t.Fatalf("threshold = %+v", got)
	}
	if view.lastStatus() != "set_threshold" {
		t.Fatalf("status = %q", view.lastStatus())
	}
}
