package scan

import (
	"image"
)

// NotFound marks a row without a stripe pixel.
const NotFound = -1

// Detection is the brightest masked column of one ROI row. Row and Column are relative to
// the ROI origin; Column is NotFound when no usable pixel was found.
type Detection struct {
	Row    int
	Column int
}

// Found reports whether the row produced a usable column.
func (d Detection) Found() bool { return d.Column > 0 }

// Locator finds the stripe on the red channel of RGBA frames.
// It holds no state between frames.
type Locator struct{}

// NewLocator returns the pure Go stripe locator.
func NewLocator() *Locator { return &Locator{} }

// Locate returns one Detection per ROI row, top to bottom. The ROI is clipped to the frame;
// rows outside the frame are not reported. Column 0 is reported as NotFound.
func (l *Locator) Locate(frame *image.RGBA, roi image.Rectangle, th Threshold) []Detection {
	if frame == nil || roi.Empty() {
		return nil
	}
	r := roi.Intersect(frame.Bounds())
	if r.Empty() {
		return nil
	}
	out := make([]Detection, 0, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		col := NotFound
		var best uint8
		off := frame.PixOffset(r.Min.X, y)
		shift := r.Min.X - roi.Min.X
		for x := 0; x < r.Dx(); x++ {
			red := frame.Pix[off+x*4]
			var m uint8
			if th.Contains(red) {
				m = 255
			}
			// strict compare keeps the leftmost maximum
			if m > best {
				best, col = m, x+shift
			}
		}
		if best == 0 || col == 0 {
			col = NotFound
		}
		out = append(out, Detection{Row: y - roi.Min.Y, Column: col})
	}
	return out
}

// Mask returns the binary red-channel band mask of the full frame.
func (l *Locator) Mask(frame *image.RGBA, th Threshold) *image.Gray {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	mask := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := frame.PixOffset(b.Min.X, y)
		dst := mask.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			if th.Contains(frame.Pix[src+x*4]) {
				mask.Pix[dst+x] = 255
			}
		}
	}
	return mask
}

var _ LocatorContract = (*Locator)(nil)
