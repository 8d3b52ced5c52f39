package model

import (
	"github.com/soocke/lscan-go/domain/scan"
)

// FrameModel holds the most recent frame result and running counters. The zero value is usable.
// No synchronization needed: updates occur on the UI thread tick.
type FrameModel struct {
	last      scan.FrameResult
	processed int
	skipped   int
	found     int
}

func NewFrameModel() *FrameModel { return &FrameModel{} }

// Set records a processed frame.
func (m *FrameModel) Set(res scan.FrameResult) {
	if m == nil {
		return
	}
	m.last = res
	m.processed++
	if res.Skipped {
		m.skipped++
	}
	m.found = 0
	for _, d := range res.Detections {
		if d.Found() {
			m.found++
		}
	}
}

// Last returns the most recent result.
func (m *FrameModel) Last() scan.FrameResult {
	if m == nil {
		return scan.FrameResult{}
	}
	return m.last
}

// Counters returns processed and skipped frame counts.
func (m *FrameModel) Counters() (processed, skipped int) {
	if m == nil {
		return 0, 0
	}
	return m.processed, m.skipped
}

// Found returns how many rows of the last frame had a stripe.
func (m *FrameModel) Found() int {
	if m == nil {
		return 0
	}
	return m.found
}
