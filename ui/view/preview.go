package view

import (
	"image"

	"github.com/soocke/lscan-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview shows the composed frame and a zoom of the ROI.
// It owns two LabelWidgets and provides methods to update or reset them.
type Preview interface {
	UpdatePreview(img image.Image)
	UpdateROI(img image.Image)
	Reset()
}

type preview struct {
	frameLabel *LabelWidget
	roiLabel   *LabelWidget
	prevFrame  *Img // last Tk photo for the frame
	prevROI    *Img // last Tk photo for the roi zoom
}

const (
	maxPreviewW = 640
	maxPreviewH = 480
	maxROIW     = 240
	maxROIH     = 480
)

// NewPreview creates the preview labels, grids them and returns the view.
// Layout: the frame spans columns 0-3; the roi zoom sits at column 4 of the provided row.
func NewPreview(row int) Preview {
	pngBytes := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 320, 240)))
	framePhoto := NewPhoto(Data(pngBytes))
	roiPhoto := NewPhoto(Data(pngBytes))
	frame := Label(Image(framePhoto), Borderwidth(1), Relief("sunken"))
	roi := Label(Image(roiPhoto), Borderwidth(1), Relief("sunken"))
	Grid(frame, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(roi, Row(row), Column(4), Columnspan(1), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return &preview{frameLabel: frame, roiLabel: roi, prevFrame: framePhoto, prevROI: roiPhoto}
}

func (v *preview) UpdatePreview(img image.Image) {
	if v.frameLabel == nil || img == nil {
		return
	}
	v.prevFrame = v.swap(v.frameLabel, v.prevFrame, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
}

func (v *preview) UpdateROI(img image.Image) {
	if v.roiLabel == nil || img == nil {
		return
	}
	v.prevROI = v.swap(v.roiLabel, v.prevROI, images.ScaleToFit(img, maxROIW, maxROIH))
}

// swap replaces the label photo, deleting the previous one so obsolete pixel buffers
// are not retained by Tk.
func (v *preview) swap(lbl *LabelWidget, prev *Img, img image.Image) *Img {
	if prev != nil {
		prev.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	lbl.Configure(Image(photo))
	return photo
}

func (v *preview) Reset() {
	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 240))
	if v.frameLabel != nil {
		v.prevFrame = v.swap(v.frameLabel, v.prevFrame, placeholder)
	}
	if v.roiLabel != nil {
		v.prevROI = v.swap(v.roiLabel, v.prevROI, placeholder)
	}
}
