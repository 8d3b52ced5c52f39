//go:build !gocv

package cvscan

import (
	"github.com/soocke/lscan-go/domain/frames"
	"github.com/soocke/lscan-go/domain/scan"
)

// Available reports whether the binary was built with OpenCV support.
func Available() bool { return false }

// Open fails without the gocv build tag.
func Open() (scan.LocatorContract, error) { return nil, frames.ErrOpenCVUnavailable }
