package scan

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
)

// Session drives the stripe locator and triangulator over an ordered frame sequence and
// accumulates points while recording. It is owned by a single control loop; none of its
// methods may be called concurrently.
type Session struct {
	logger   *slog.Logger
	frames   FrameSource
	locator  LocatorContract
	tri      *Triangulator
	exporter Exporter
	settings *Settings

	angles []float64
	cloud  PointCloud
	mode   Mode
	index  int
	width  int
	pass   string
	closed bool

	exports   int
	listeners []ModeListener
}

// NewSession validates the collaborators and computes the rotation angle table once.
// A nil locator selects the pure Go Locator; nil settings select the default threshold.
func NewSession(logger *slog.Logger, frames FrameSource, settings *Settings, tri *Triangulator, locator LocatorContract, exporter Exporter) (*Session, error) {
	if frames == nil || frames.Len() == 0 {
		return nil, ErrNoFrames
	}
	if exporter == nil {
		return nil, ErrNoExporter
	}
	if tri == nil {
		t, err := NewTriangulator(DefaultIncidenceDeg)
		if err != nil {
			return nil, err
		}
		tri = t
	}
	if locator == nil {
		locator = NewLocator()
	}
	if settings == nil {
		s, err := NewSettings(Threshold{Low: 65, High: MaxIntensity}, 0, false)
		if err != nil {
			return nil, err
		}
		settings = s
	}
	s := &Session{
		logger:   logger,
		frames:   frames,
		locator:  locator,
		tri:      tri,
		exporter: exporter,
		settings: settings,
		angles:   AngleTable(frames.Len()),
		mode:     ModeIdle,
	}
	if logger != nil {
		logger.Info("scan session created", "frames", frames.Len())
	}
	return s, nil
}

// AddListener registers a listener for mode transitions.
func (s *Session) AddListener(l ModeListener) {
	s.listeners = append(s.listeners, l)
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Index returns the index of the frame processed next.
func (s *Session) Index() int { return s.index }

// Len returns the number of frames in one cycle.
func (s *Session) Len() int { return len(s.angles) }

// Angle returns the rotation angle of frame i in radians.
func (s *Session) Angle(i int) float64 { return s.angles[i] }

// Settings exposes the session configuration for reading. Mutate it through Handle.
func (s *Session) Settings() *Settings { return s.settings }

// Points returns a copy of the accumulated point cloud.
func (s *Session) Points() []r3.Vector { return s.cloud.Points() }

// Summary describes the accumulated point cloud.
func (s *Session) Summary() Summary { return s.cloud.Summary() }

// Pass returns the id of the current or last recording pass, empty before the first one.
func (s *Session) Pass() string { return s.pass }

// Exports returns how many successful exports the session performed.
func (s *Session) Exports() int { return s.exports }

// Done reports whether Quit was handled.
func (s *Session) Done() bool { return s.closed }

func (s *Session) transition(next Mode) {
	prev := s.mode
	if prev == next {
		return
	}
	s.mode = next
	if s.logger != nil {
		s.logger.Debug("scan mode transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}

// Handle applies one operator command. Rejected commands leave the session unchanged.
func (s *Session) Handle(cmd Command) error {
	if s.closed {
		return ErrSessionClosed
	}
	switch c := cmd.(type) {
	case StartRecording:
		s.cloud.Reset()
		s.index = 0
		s.pass = uuid.NewString()
		if s.logger != nil {
			s.logger.Info("recording pass started", "pass", s.pass, "frames", len(s.angles))
		}
		// re-entering Recording from Recording still restarts the pass
		s.transition(ModeRecording)
	case ToIdle:
		s.transition(ModeIdle)
	case ToMaskPreview:
		s.transition(ModeMaskPreview)
	case SetThresholdLow:
		return s.settings.SetThresholdLow(c.Value)
	case SetThresholdHigh:
		return s.settings.SetThresholdHigh(c.Value)
	case SetThreshold:
		return s.settings.SetThreshold(c.Threshold)
	case SetAxisOffset:
		s.settings.SetAxisOffset(c.Value)
	case DefineROI:
		if err := s.ensureWidth(); err != nil {
			return err
		}
		return s.settings.DefineROI(c.Point, s.width)
	case ExtendROI:
		return s.settings.ExtendROI(c.Point)
	case ReplaceROI:
		if err := s.ensureWidth(); err != nil {
			return err
		}
		return s.settings.ReplaceROI(c.Anchor, c.Corner, s.width)
	case ClearROI:
		s.settings.ClearROI()
	case Export:
		return s.export()
	case Quit:
		s.closed = true
		if s.logger != nil {
			s.logger.Info("scan session closed", "points", s.cloud.Len(), "exports", s.exports)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}

// ensureWidth loads the current frame when no frame width is known yet.
func (s *Session) ensureWidth() error {
	if s.width != 0 {
		return nil
	}
	_, err := s.load(s.index)
	return err
}

func (s *Session) load(i int) (*image.RGBA, error) {
	frame, err := s.frames.Frame(i)
	if err != nil {
		return nil, fmt.Errorf("load frame %d (%s): %w", i, s.frames.Name(i), err)
	}
	s.width = frame.Bounds().Dx()
	return frame, nil
}

// ProcessFrame runs detection on the current frame without advancing. A frame that fails
// to load is reported as skipped; accumulated points are never discarded.
func (s *Session) ProcessFrame() FrameResult {
	res := FrameResult{
		Index: s.index,
		Name:  s.frames.Name(s.index),
		Theta: s.Angle(s.index),
		Mode:  s.mode,
	}
	frame, err := s.load(s.index)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("frame skipped", "index", s.index, "path", res.Name, "error", err)
		}
		res.Skipped = true
		res.Err = err
		res.Recorded = s.cloud.Len()
		return res
	}
	th := s.settings.Threshold()
	res.Frame = frame
	res.Center = s.settings.Center(s.width)
	res.ROI = s.settings.ROI()
	if s.mode == ModeMaskPreview {
		res.Mask = s.locator.Mask(frame, th)
	}
	if s.settings.HasROI() {
		res.Detections = s.locator.Locate(frame, res.ROI, th)
		res.Points = s.tri.Points(res.Detections, res.Theta)
	}
	if s.mode == ModeRecording {
		s.cloud.Append(res.Points...)
	}
	res.Recorded = s.cloud.Len()
	return res
}

// Advance moves to the next frame. Completing a cycle while recording exports the point
// cloud once and returns to Idle; the index wraps to 0 in every mode. An export error is
// returned with the point cloud retained.
func (s *Session) Advance() error {
	s.index++
	if s.index < len(s.angles) {
		return nil
	}
	return s.cycleComplete()
}

func (s *Session) cycleComplete() error {
	s.index = 0
	if s.mode != ModeRecording {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("recording pass complete", "pass", s.pass, "points", s.cloud.Len())
	}
	err := s.export()
	s.transition(ModeIdle)
	return err
}

func (s *Session) export() error {
	if err := s.exporter.Export(s.cloud.Points()); err != nil {
		if s.logger != nil {
			s.logger.Error("export failed", "pass", s.pass, "points", s.cloud.Len(), "error", err)
		}
		return fmt.Errorf("export: %w", err)
	}
	s.exports++
	return nil
}

// Step processes the current frame and advances. It is one iteration of the control loop.
func (s *Session) Step() (FrameResult, error) {
	if s.closed {
		return FrameResult{}, ErrSessionClosed
	}
	res := s.ProcessFrame()
	return res, s.Advance()
}
