package presenter

import (
	"time"

	"github.com/soocke/lscan-go/domain/scan"
	"github.com/soocke/lscan-go/ui/model"
)

// ModeSource reports the session mode.
type ModeSource interface {
	Mode() scan.Mode
	Len() int
}

// RecordingView displays pass timing and progress.
type RecordingView interface {
	SetRecording(pass, total time.Duration)
	SetProgress(frame, frames, points int)
}

// RecordingPresenter formats recording durations and progress for the view.
type RecordingPresenter struct {
	src    ModeSource
	rec    *model.RecordingModel
	frames *model.FrameModel
	view   RecordingView
}

// NewRecordingPresenter returns a new RecordingPresenter.
func NewRecordingPresenter(src ModeSource, rec *model.RecordingModel, frames *model.FrameModel, view RecordingView) *RecordingPresenter {
	return &RecordingPresenter{src: src, rec: rec, frames: frames, view: view}
}

// Tick advances the recording model and pushes values to the view.
func (p *RecordingPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.rec == nil || p.view == nil {
		return
	}
	p.rec.OnTick(p.src.Mode() == scan.ModeRecording, now)
	pass, total := p.rec.Values()
	p.view.SetRecording(pass, total)
	last := p.frames.Last()
	frame := 0
	if processed, _ := p.frames.Counters(); processed > 0 {
		frame = last.Index + 1
	}
	p.view.SetProgress(frame, p.src.Len(), last.Recorded)
}
