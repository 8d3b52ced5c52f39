package presenter

import (
	"image"
	"time"

	"github.com/soocke/lscan-go/domain/scan"
)

type mockSession struct {
	steps   int
	done    bool
	mode    scan.Mode
	frames  int
	result  scan.FrameResult
	stepErr error
	handled []scan.Command
	// reject returns an error for matching commands
	reject func(scan.Command) error
}

func (s *mockSession) Step() (scan.FrameResult, error) {
	s.steps++
	res := s.result
	res.Index = (s.steps - 1) % max(s.frames, 1)
	return res, s.stepErr
}
func (s *mockSession) Done() bool      { return s.done }
func (s *mockSession) Mode() scan.Mode { return s.mode }
func (s *mockSession) Len() int        { return s.frames }
func (s *mockSession) Handle(cmd scan.Command) error {
	if s.reject != nil {
		if err := s.reject(cmd); err != nil {
			return err
		}
	}
	s.handled = append(s.handled, cmd)
	return nil
}

type mockView struct {
	previews, rois int
	status         []string
	states         []string
	playing        []bool
	pass, total    time.Duration
	frame, frames  int
	points         int
}

func (v *mockView) UpdatePreview(image.Image)              { v.previews++ }
func (v *mockView) UpdateROI(image.Image)                  { v.rois++ }
func (v *mockView) SetStatus(text string)                  { v.status = append(v.status, text) }
func (v *mockView) SetStateLabel(text string)              { v.states = append(v.states, text) }
func (v *mockView) SetPlaying(b bool)                      { v.playing = append(v.playing, b) }
func (v *mockView) SetRecording(pass, total time.Duration) { v.pass, v.total = pass, total }
func (v *mockView) SetProgress(frame, frames, points int)  { v.frame, v.frames, v.points = frame, frames, points }

func (v *mockView) lastStatus() string {
	if len(v.status) == 0 {
		return ""
	}
	return v.status[len(v.status)-1]
}
