package scan

import (
	"image"

	"github.com/golang/geo/r3"
)

// Mode enumerates the mutually exclusive session modes.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRecording
	ModeMaskPreview
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRecording:
		return "recording"
	case ModeMaskPreview:
		return "mask"
	default:
		return "unknown"
	}
}

// ModeListener is called on each mode transition.
type ModeListener func(prev, next Mode)

// FrameSource provides the ordered input images. Frame(i) must be safe to call
// repeatedly for the same index; the session revisits frames on every cycle.
type FrameSource interface {
	Len() int
	Frame(i int) (*image.RGBA, error)
	Name(i int) string
}

// LocatorContract finds the stripe in one frame.
type LocatorContract interface {
	Locate(frame *image.RGBA, roi image.Rectangle, th Threshold) []Detection
	Mask(frame *image.RGBA, th Threshold) *image.Gray
}

// Exporter persists a full point cloud in insertion order.
type Exporter interface {
	Export(points []r3.Vector) error
}

// FrameResult describes one processed frame for presenters and previews.
type FrameResult struct {
	Index      int
	Name       string
	Frame      *image.RGBA // nil when the frame could not be loaded
	Mask       *image.Gray // binary mask, only computed in ModeMaskPreview
	ROI        image.Rectangle
	Center     int
	Theta      float64 // rotation angle of this frame in radians
	Detections []Detection
	Points     []r3.Vector
	Mode       Mode
	Recorded   int // points in the cloud after this frame
	Skipped    bool
	Err        error
}
