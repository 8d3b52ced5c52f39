package scan

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/golang/geo/r3"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// synthFrame returns a black frame with red pixels at the given points.
func synthFrame(w, h int, red uint8, pts ...image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	for _, p := range pts {
		img.SetRGBA(p.X, p.Y, color.RGBA{R: red, A: 255})
	}
	return img
}

// memFrames is an in-memory FrameSource; indexes listed in bad fail to load.
type memFrames struct {
	frames []*image.RGBA
	bad    map[int]bool
	loads  int
}

func (m *memFrames) Len() int { return len(m.frames) }

func (m *memFrames) Frame(i int) (*image.RGBA, error) {
	m.loads++
	if m.bad[i] {
		return nil, errors.New("corrupt image")
	}
	return m.frames[i], nil
}

func (m *memFrames) Name(i int) string { return fmt.Sprintf("frame-%03d.png", i) }

// recordingExporter captures every export call.
type recordingExporter struct {
	calls [][]r3.Vector
	err   error
}

func (e *recordingExporter) Export(points []r3.Vector) error {
	if e.err != nil {
		return e.err
	}
	cp := make([]r3.Vector, len(points))
	copy(cp, points)
	e.calls = append(e.calls, cp)
	return nil
}
