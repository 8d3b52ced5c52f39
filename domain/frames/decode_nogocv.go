//go:build !gocv

package frames

import "image"

// DecodeOpenCV is unavailable without the gocv build tag.
func DecodeOpenCV(string) (image.Image, error) {
	return nil, ErrOpenCVUnavailable
}
