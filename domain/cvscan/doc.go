// Package cvscan implements the stripe locator on OpenCV. The locator is compiled only with
// the gocv build tag; Open reports frames.ErrOpenCVUnavailable otherwise.
package cvscan
