//go:build gocv

package frames

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DecodeOpenCV decodes an image file with OpenCV.
func DecodeOpenCV(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("opencv: cannot read %s", path)
	}
	return mat.ToImage()
}
