package images

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/soocke/lscan-go/domain/scan"
)

var (
	AxisColor   = color.RGBA{G: 255, A: 255}
	ROIColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	StripeColor = color.RGBA{B: 255, A: 255}
	LabelColor  = color.RGBA{R: 255, A: 255}
)

// Compose renders the preview for one processed frame: the binary mask in mask preview,
// otherwise the frame with the axis, ROI, detected stripe and recording label drawn on top.
// It returns nil for skipped frames. The result may be handed back with Recycle.
func Compose(res scan.FrameResult) *image.RGBA {
	if res.Mask != nil {
		return MaskToRGBA(res.Mask)
	}
	if res.Frame == nil {
		return nil
	}
	b := res.Frame.Bounds()
	dst := acquire(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), res.Frame, b.Min, draw.Src)
	dc := gg.NewContextForRGBA(dst)

	drawLine(dc, float64(res.Center), 0, float64(res.Center), float64(b.Dy()), AxisColor, 1)
	if !res.ROI.Empty() {
		DrawRectangleEmpty(dc, res.ROI, ROIColor, 1)
		drawStripe(dc, res.ROI.Min, res.Detections)
	}
	if res.Mode == scan.ModeRecording {
		dc.SetColor(LabelColor)
		dc.DrawString(RecordingLabel(res), 10, 20)
	}
	return dst
}

// RecordingLabel names the frame being recorded.
func RecordingLabel(res scan.FrameResult) string {
	return fmt.Sprintf("recording %d", res.Index)
}

// DrawRectangleEmpty strokes the outline of r.
func DrawRectangleEmpty(dc *gg.Context, r image.Rectangle, c color.Color, width float64) {
	x0, y0, x1, y1 := float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)
	drawLine(dc, x0, y0, x1, y0, c, width)
	drawLine(dc, x0, y0, x0, y1, c, width)
	drawLine(dc, x1, y0, x1, y1, c, width)
	drawLine(dc, x0, y1, x1, y1, c, width)
}

func drawLine(dc *gg.Context, x0, y0, x1, y1 float64, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
}

// drawStripe joins consecutive found detections; gaps break the polyline.
func drawStripe(dc *gg.Context, origin image.Point, ds []scan.Detection) {
	dc.SetColor(StripeColor)
	dc.SetLineWidth(1)
	open := false
	for _, d := range ds {
		if !d.Found() {
			open = false
			continue
		}
		x := float64(origin.X+d.Column) + 0.5
		y := float64(origin.Y+d.Row) + 0.5
		if open {
			dc.LineTo(x, y)
		} else {
			dc.MoveTo(x, y)
			dc.LineTo(x, y)
			open = true
		}
	}
	dc.Stroke()
}

// MaskToRGBA expands a binary mask to an opaque grayscale RGBA image.
func MaskToRGBA(mask *image.Gray) *image.RGBA {
	b := mask.Bounds()
	dst := acquire(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := mask.PixOffset(b.Min.X, b.Min.Y+y)
		out := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			v := mask.Pix[src+x]
			dst.Pix[out+x*4] = v
			dst.Pix[out+x*4+1] = v
			dst.Pix[out+x*4+2] = v
			dst.Pix[out+x*4+3] = 255
		}
	}
	return dst
}
