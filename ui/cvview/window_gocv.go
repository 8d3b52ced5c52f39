//go:build gocv

package cvview

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"go.uber.org/multierr"
	"gocv.io/x/gocv"
)

// Window shows the composed preview in a HighGUI window with threshold and offset trackbars.
type Window struct {
	opts   Options
	logger *slog.Logger

	win    *gocv.Window
	roiWin *gocv.Window
	low    *gocv.Trackbar
	high   *gocv.Trackbar
	offset *gocv.Trackbar

	last   gocv.Mat // last shown preview in BGR, source for SelectROI
	bars   trackbars
	mode   string
	status string
}

// NewWindow opens the preview and roi windows.
func NewWindow(opts Options, logger *slog.Logger) (*Window, error) {
	if opts.Title == "" {
		opts.Title = "lscan"
	}
	if opts.Tick <= 0 {
		opts.Tick = 2 * time.Millisecond
	}
	w := &Window{opts: opts, logger: logger, last: gocv.NewMat()}
	w.win = gocv.NewWindow(opts.Title)
	w.roiWin = gocv.NewWindow(opts.Title + " roi")
	w.low = w.win.CreateTrackbar("threshold low", 255)
	w.high = w.win.CreateTrackbar("threshold high", 255)
	w.offset = w.win.CreateTrackbar("axis offset", 2*OffsetBias)
	w.low.SetPos(opts.Threshold.Low)
	w.high.SetPos(opts.Threshold.High)
	w.offset.SetPos(opts.Offset + OffsetBias)
	w.bars = trackbars{low: opts.Threshold.Low, high: opts.Threshold.High, offset: opts.Offset + OffsetBias}
	return w, nil
}

// Run ticks the scan loop and polls keys until the session is done, the window is closed or
// ctx is cancelled.
func (w *Window) Run(ctx context.Context, c Controls, hooks Hooks) error {
	delay := max(int(w.opts.Tick/time.Millisecond), 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if hooks.Tick != nil {
			hooks.Tick()
		}
		if hooks.Done != nil && hooks.Done() {
			return nil
		}
		name := KeyName(w.win.WaitKey(delay))
		if err := dispatch(name, c, hooks, w.selectROI); err != nil && w.logger != nil {
			w.logger.Debug("cv key rejected", "key", name, "error", err)
		}
		if err := w.bars.sync(c, w.low.GetPos(), w.high.GetPos(), w.offset.GetPos()); err != nil && w.logger != nil {
			w.logger.Debug("cv trackbar rejected", "error", err)
		}
		if !w.win.IsOpen() {
			return c.Key("Escape")
		}
	}
}

func (w *Window) selectROI() image.Rectangle {
	if w.last.Empty() {
		return image.Rectangle{}
	}
	return w.win.SelectROI(w.last)
}

// UpdatePreview shows img at full resolution so selections map to frame pixels.
func (w *Window) UpdatePreview(img image.Image) {
	bgr, err := toBGR(img)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("cv preview convert failed", "error", err)
		}
		return
	}
	w.win.IMShow(bgr)
	_ = w.last.Close()
	w.last = bgr
}

// UpdateROI shows the ROI crop in the second window.
func (w *Window) UpdateROI(img image.Image) {
	bgr, err := toBGR(img)
	if err != nil {
		return
	}
	defer bgr.Close()
	w.roiWin.IMShow(bgr)
}

func toBGR(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.Mat{}, fmt.Errorf("nil image")
	}
	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer rgba.Close()
	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// SetStateLabel shows the mode in the window title.
func (w *Window) SetStateLabel(text string) {
	w.mode = text
	w.win.SetWindowTitle(w.opts.Title + " | " + text)
}

// SetStatus logs status changes; HighGUI has no status line.
func (w *Window) SetStatus(text string) {
	if text == w.status {
		return
	}
	w.status = text
	if w.logger != nil && text != "" {
		w.logger.Info("status", "text", text)
	}
}

func (w *Window) SetRecording(pass, total time.Duration) {}

// SetProgress appends the frame counter to the title.
func (w *Window) SetProgress(frame, frames, points int) {
	w.win.SetWindowTitle(fmt.Sprintf("%s | %s | frame %d/%d | points %d", w.opts.Title, w.mode, frame, frames, points))
}

func (w *Window) SetPlaying(playing bool) {
	if w.logger != nil {
		w.logger.Info("playback", "playing", playing)
	}
}

// Close releases the windows and the retained preview.
func (w *Window) Close() error {
	return multierr.Combine(w.last.Close(), w.roiWin.Close(), w.win.Close())
}
