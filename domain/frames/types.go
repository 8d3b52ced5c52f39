package frames

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrNoPaths is returned when a sequence is built without image paths.
	ErrNoPaths = errors.New("no image paths")

	// ErrNoMatch is returned when a glob pattern matches nothing.
	ErrNoMatch = errors.New("pattern matched no files")

	// ErrIndex is returned for frame indexes outside the sequence.
	ErrIndex = errors.New("frame index out of range")

	// ErrOpenCVUnavailable is returned by OpenCV helpers in builds without the gocv tag.
	ErrOpenCVUnavailable = errors.New("opencv support not compiled in (build with -tags gocv)")
)

// Decoder reads one image file.
type Decoder func(path string) (image.Image, error)

// Stats summarises decode and cache behaviour for instrumentation.
type Stats struct {
	Frames    int
	Decodes   uint64
	Failures  uint64
	Hits      uint64
	Cached    int
	AvgDecode time.Duration
	Bytes     uint64 // pixel bytes decoded so far
}
