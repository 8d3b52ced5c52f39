package images

import (
	"errors"
	"image"
	"image/draw"
)

// CropROI copies the ROI out of frame for a zoomed view. The rectangle is clamped to the
// frame; the returned rectangle is the clamped one.
func CropROI(frame *image.RGBA, roi image.Rectangle) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	r := roi.Intersect(frame.Bounds())
	if r.Empty() {
		return nil, image.Rectangle{}, errors.New("roi outside frame")
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), frame, r.Min, draw.Src)
	return out, r, nil
}
