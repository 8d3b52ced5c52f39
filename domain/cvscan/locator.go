//go:build gocv

package cvscan

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/soocke/lscan-go/domain/scan"
)

// Locator thresholds the red channel with cv::inRange and takes the per row maximum
// location with cv::minMaxLoc.
type Locator struct{}

// NewLocator returns the OpenCV-backed locator.
func NewLocator() *Locator { return &Locator{} }

var _ scan.LocatorContract = (*Locator)(nil)

// redMask returns the 8-bit band mask of the red channel. The caller closes it.
func redMask(frame *image.RGBA, th scan.Threshold) (gocv.Mat, error) {
	b := frame.Bounds()
	pix := frame.Pix
	if frame.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		tight := make([]byte, 0, b.Dx()*b.Dy()*4)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := frame.PixOffset(b.Min.X, y)
			tight = append(tight, frame.Pix[off:off+b.Dx()*4]...)
		}
		pix = tight
	}
	src, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer src.Close()
	channels := gocv.Split(src)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	mask := gocv.NewMat()
	lower := gocv.NewScalar(float64(th.Low), 0, 0, 0)
	upper := gocv.NewScalar(float64(th.High), 0, 0, 0)
	gocv.InRangeWithScalar(channels[0], lower, upper, &mask)
	return mask, nil
}

// Locate follows the pure Go locator contract: clipped ROI, ROI-relative rows and
// columns, column 0 reported as not found.
func (l *Locator) Locate(frame *image.RGBA, roi image.Rectangle, th scan.Threshold) []scan.Detection {
	if frame == nil || roi.Empty() {
		return nil
	}
	b := frame.Bounds()
	r := roi.Intersect(b)
	if r.Empty() {
		return nil
	}
	mask, err := redMask(frame, th)
	if err != nil {
		return nil
	}
	defer mask.Close()
	shift := r.Min.X - roi.Min.X
	out := make([]scan.Detection, 0, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Region(image.Rect(r.Min.X-b.Min.X, y-b.Min.Y, r.Max.X-b.Min.X, y-b.Min.Y+1))
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(row)
		row.Close()
		col := scan.NotFound
		if maxVal > 0 {
			col = maxLoc.X + shift
		}
		if col == 0 {
			col = scan.NotFound
		}
		out = append(out, scan.Detection{Row: y - roi.Min.Y, Column: col})
	}
	return out
}

// Mask returns the full frame band mask.
func (l *Locator) Mask(frame *image.RGBA, th scan.Threshold) *image.Gray {
	if frame == nil {
		return nil
	}
	mask, err := redMask(frame, th)
	if err != nil {
		return nil
	}
	defer mask.Close()
	b := frame.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	copy(out.Pix, mask.ToBytes())
	out.Rect = b
	return out
}
