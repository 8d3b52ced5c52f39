package scan

import (
	"fmt"
	"image"
)

// MaxIntensity is the largest 8-bit channel value.
const MaxIntensity = 255

// Threshold is an inclusive red intensity band.
type Threshold struct {
	Low, High int
}

// Contains reports whether v lies within the band.
func (t Threshold) Contains(v uint8) bool {
	return int(v) >= t.Low && int(v) <= t.High
}

// Settings carries the operator-adjustable scan parameters. It is owned by the session and
// passed by reference into frame processing; all mutation goes through the setters.
type Settings struct {
	threshold  Threshold
	axisOffset int
	snapToAxis bool
	roi        ROI
}

// NewSettings validates the initial threshold.
func NewSettings(th Threshold, axisOffset int, snapToAxis bool) (*Settings, error) {
	if err := checkThreshold(th); err != nil {
		return nil, err
	}
	return &Settings{threshold: th, axisOffset: axisOffset, snapToAxis: snapToAxis}, nil
}

func checkThreshold(th Threshold) error {
	if th.Low < 0 || th.Low > MaxIntensity || th.High < 0 || th.High > MaxIntensity {
		return fmt.Errorf("%w: low=%d high=%d", ErrThresholdRange, th.Low, th.High)
	}
	if th.Low > th.High {
		return fmt.Errorf("%w: low=%d high=%d", ErrThresholdOrder, th.Low, th.High)
	}
	return nil
}

// Threshold returns the current band.
func (s *Settings) Threshold() Threshold { return s.threshold }

// SetThreshold replaces the whole band. An invalid pair is rejected and the current band is kept.
func (s *Settings) SetThreshold(th Threshold) error {
	if err := checkThreshold(th); err != nil {
		return err
	}
	s.threshold = th
	return nil
}

// SetThresholdLow updates the lower bound; out-of-order or out-of-range values are
// rejected and the current band is kept.
func (s *Settings) SetThresholdLow(v int) error {
	next := Threshold{Low: v, High: s.threshold.High}
	if err := checkThreshold(next); err != nil {
		return err
	}
	s.threshold = next
	return nil
}

// SetThresholdHigh updates the upper bound with the same rules as SetThresholdLow.
func (s *Settings) SetThresholdHigh(v int) error {
	next := Threshold{Low: s.threshold.Low, High: v}
	if err := checkThreshold(next); err != nil {
		return err
	}
	s.threshold = next
	return nil
}

// AxisOffset returns the signed pixel offset of the axis from the image center.
func (s *Settings) AxisOffset() int { return s.axisOffset }

// SetAxisOffset updates the axis offset.
func (s *Settings) SetAxisOffset(v int) { s.axisOffset = v }

// Center returns the axis projection column for a frame of the given width.
func (s *Settings) Center(width int) int { return width/2 + s.axisOffset }

// ROI returns the current ROI rectangle (empty when undefined).
func (s *Settings) ROI() image.Rectangle { return s.roi.Rect() }

// HasROI reports whether an ROI is defined.
func (s *Settings) HasROI() bool { return s.roi.Defined() }

// DefineROI starts a new ROI at p for a frame of the given width.
func (s *Settings) DefineROI(p image.Point, width int) error {
	return s.roi.Define(p, s.Center(width), s.snapToAxis)
}

// ExtendROI drags the ROI corner to p.
func (s *Settings) ExtendROI(p image.Point) error { return s.roi.Extend(p) }

// ReplaceROI defines a new ROI at anchor extended to corner, discarding any current ROI.
// The new ROI is validated first; on error the current ROI is kept.
func (s *Settings) ReplaceROI(anchor, corner image.Point, width int) error {
	var next ROI
	if err := next.Define(anchor, s.Center(width), s.snapToAxis); err != nil {
		return err
	}
	if err := next.Extend(corner); err != nil {
		return err
	}
	s.roi = next
	return nil
}

// ClearROI discards the ROI.
func (s *Settings) ClearROI() { s.roi.Clear() }
