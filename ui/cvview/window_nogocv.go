//go:build !gocv

package cvview

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/lscan-go/domain/frames"
)

// Window is unavailable without the gocv build tag.
type Window struct{}

// NewWindow fails without the gocv build tag.
func NewWindow(Options, *slog.Logger) (*Window, error) { return nil, frames.ErrOpenCVUnavailable }

func (w *Window) Run(context.Context, Controls, Hooks) error { return frames.ErrOpenCVUnavailable }
func (w *Window) UpdatePreview(image.Image)                  {}
func (w *Window) UpdateROI(image.Image)                      {}
func (w *Window) SetStateLabel(string)                       {}
func (w *Window) SetStatus(string)                           {}
func (w *Window) SetRecording(time.Duration, time.Duration)  {}
func (w *Window) SetProgress(int, int, int)                  {}
func (w *Window) SetPlaying(bool)                            {}
func (w *Window) Close() error                               { return nil }
