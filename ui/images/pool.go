package images

import (
	"image"
	"sync"
)

// Preview buffers are composed once per tick at frame resolution. Consumers that are done
// with a composed image hand it back with Recycle so the next Compose can reuse its Pix.

var previewPool sync.Pool // stores *image.RGBA

// acquire returns an RGBA image sized to rect. Pix length is exactly rect area * 4 and the
// stride is width*4; contents are undefined and must be overwritten by the caller.
func acquire(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := previewPool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// Recycle returns a composed image to the pool. The image must no longer be accessed by the
// caller after invoking Recycle.
func Recycle(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	previewPool.Put(img)
}
