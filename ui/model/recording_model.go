package model

import (
	"time"
)

// RecordingModel tracks the duration of the current recording pass and the accumulated
// recording time. Presenters poll Values() and update views. The zero value is ready to use.
type RecordingModel struct {
	active       bool
	passStart    time.Time
	lastDuration time.Duration
	accumulated  time.Duration
	passes       int
}

// NewRecordingModel returns a pointer to a ready-to-use RecordingModel.
func NewRecordingModel() *RecordingModel { return &RecordingModel{} }

// OnTick updates the model using the current recording state and timestamp.
func (m *RecordingModel) OnTick(recording bool, now time.Time) {
	if m == nil {
		return
	}
	if recording {
		if !m.active { // idle -> recording
			m.active = true
			m.passStart = now
			m.lastDuration = 0
			m.passes++
		}
		m.lastDuration = now.Sub(m.passStart)
	} else if m.active { // recording -> idle
		m.lastDuration = now.Sub(m.passStart)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// Values returns the current pass duration and the total recording time.
// The total includes the ongoing pass when active.
func (m *RecordingModel) Values() (pass, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	pass = m.lastDuration
	total = m.accumulated
	if m.active {
		total += pass
	}
	return
}

// Passes returns how many recording passes were observed.
func (m *RecordingModel) Passes() int {
	if m == nil {
		return 0
	}
	return m.passes
}
