package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// RecordingStats shows pass timing and scan progress.
type RecordingStats interface {
	SetRecording(pass, total time.Duration)
	SetProgress(frame, frames, points int)
}

type recordingStats struct {
	passLbl   *LabelWidget
	totalLbl  *LabelWidget
	frameLbl  *LabelWidget
	pointsLbl *LabelWidget
}

// NewRecordingStats creates the stat labels in one grid row starting at startCol.
// If parent is nil, labels are positioned relative to the App root.
func NewRecordingStats(parent *FrameWidget, row, startCol int) RecordingStats {
	s := &recordingStats{
		passLbl:   Label(Width(14)),
		totalLbl:  Label(Width(14)),
		frameLbl:  Label(Width(14)),
		pointsLbl: Label(Width(16)),
	}
	for i, lbl := range []*LabelWidget{s.passLbl, s.totalLbl, s.frameLbl, s.pointsLbl} {
		if parent != nil {
			Grid(lbl, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(lbl, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.SetRecording(0, 0)
	s.SetProgress(0, 0, 0)
	return s
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SetRecording updates the pass and total recording durations.
func (s *recordingStats) SetRecording(pass, total time.Duration) {
	if s == nil || s.passLbl == nil {
		return
	}
	s.passLbl.Configure(Txt("Pass: " + clock(pass)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
}

// SetProgress updates the frame counter and point count.
func (s *recordingStats) SetProgress(frame, frames, points int) {
	if s == nil || s.frameLbl == nil {
		return
	}
	s.frameLbl.Configure(Txt(fmt.Sprintf("Frame: %d/%d", frame, frames)))
	s.pointsLbl.Configure(Txt(fmt.Sprintf("Points: %d", points)))
}
