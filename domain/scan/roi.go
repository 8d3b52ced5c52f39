package scan

import (
	"fmt"
	"image"
)

// ROI is the operator-defined scan rectangle. The zero value is undefined and usable.
// Once defined it always has positive width and height.
type ROI struct {
	rect    image.Rectangle
	anchor  image.Point
	defined bool
}

// Define creates a one pixel tall ROI anchored at p. It fails while an ROI exists
// or when p is not right of the axis projection at column center.
// With snapToAxis the left edge is placed on the axis instead of the anchor.
func (r *ROI) Define(p image.Point, center int, snapToAxis bool) error {
	if r.defined {
		return ErrROIExists
	}
	if p.X <= center {
		return fmt.Errorf("%w: x=%d center=%d", ErrAnchorLeftOfAxis, p.X, center)
	}
	anchor := p
	if snapToAxis {
		anchor.X = center
	}
	r.anchor = anchor
	r.rect = image.Rect(anchor.X, anchor.Y, anchor.X+1, anchor.Y+1)
	if snapToAxis {
		r.rect.Max.X = p.X
	}
	r.defined = true
	return nil
}

// Extend moves the bottom-right corner to p, never collapsing below one pixel.
func (r *ROI) Extend(p image.Point) error {
	if !r.defined {
		return ErrNoROI
	}
	r.rect.Max = image.Pt(max(r.anchor.X+1, p.X), max(r.anchor.Y+1, p.Y))
	return nil
}

// Clear discards the ROI.
func (r *ROI) Clear() {
	*r = ROI{}
}

// Defined reports whether an ROI exists.
func (r *ROI) Defined() bool { return r != nil && r.defined }

// Rect returns the ROI rectangle, or the empty rectangle when undefined.
func (r *ROI) Rect() image.Rectangle {
	if !r.Defined() {
		return image.Rectangle{}
	}
	return r.rect
}
