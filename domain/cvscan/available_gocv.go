//go:build gocv

package cvscan

import "github.com/soocke/lscan-go/domain/scan"

// Available reports whether the binary was built with OpenCV support.
func Available() bool { return true }

// Open returns the OpenCV locator.
func Open() (scan.LocatorContract, error) { return NewLocator(), nil }
