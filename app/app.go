package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	tk "modernc.org/tk9.0"

	"github.com/soocke/lscan-go/config"
	"github.com/soocke/lscan-go/domain/scan"
	"github.com/soocke/lscan-go/ui/cvview"
	"github.com/soocke/lscan-go/ui/images"
	"github.com/soocke/lscan-go/ui/view"
)

// App runs a built container with the configured frontend.
type App struct {
	c       *Container
	title   string
	width   int
	height  int
	tick    time.Duration
	ctx     context.Context
	afterID string
	closing bool
}

func NewApp(title string, width, height int, c *Container) *App {
	return &App{
		c:      c,
		title:  title,
		width:  width,
		height: height,
		tick:   time.Duration(c.Config.TickMillis) * time.Millisecond,
	}
}

// Run dispatches to the headless, Tk or OpenCV frontend.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	defer a.c.Close()
	switch {
	case a.c.Config.Headless:
		return a.RunHeadless(ctx)
	case a.c.Config.UI == config.UICV:
		return a.runCV(ctx)
	default:
		return a.runTk()
	}
}

// RunHeadless records one full pass over the frames, exports it and quits. With a preview
// directory configured every composed frame is written there as PNG.
func (a *App) RunHeadless(ctx context.Context) error {
	c := a.c
	c.Wire(nil, nil, nil)
	previewDir := c.Config.PreviewDir
	if previewDir != "" {
		if err := os.MkdirAll(previewDir, 0o755); err != nil {
			return fmt.Errorf("preview dir: %w", err)
		}
	}
	if !c.Session.Settings().HasROI() {
		c.Logger.Warn("no roi configured; the exported cloud will be empty")
	}
	start := time.Now()
	if err := c.Session.Handle(scan.StartRecording{}); err != nil {
		return err
	}
	var stepErr error
	for i := 0; i < c.Session.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := c.Session.Step()
		c.LastFrame.Set(res)
		if err != nil {
			stepErr = err
		}
		if previewDir != "" {
			if err := writePreview(previewDir, res); err != nil {
				c.Logger.Warn("preview write failed", "index", res.Index, "error", err)
			}
		}
	}
	processed, skipped := c.LastFrame.Counters()
	summary := c.Session.Summary()
	c.Logger.Info("headless scan complete",
		"frames", processed,
		"skipped", skipped,
		"points", summary.Count,
		"mean_radius", summary.MeanRadius,
		"pass", c.Session.Pass(),
		"elapsed", time.Since(start).String(),
	)
	return multierr.Append(stepErr, c.Session.Handle(scan.Quit{}))
}

func writePreview(dir string, res scan.FrameResult) error {
	img := images.Compose(res)
	if img == nil {
		return nil
	}
	defer images.Recycle(img)
	name := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", res.Index))
	return os.WriteFile(name, images.EncodePNG(img), 0o644)
}

func (a *App) runTk() error {
	c := a.c
	tk.App.WmTitle(a.title)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", a.exitHandler)
	tk.WmGeometry(tk.App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))

	c.RootView = view.NewRootView(c.Config, c.CfgPath, c.Logger)
	c.Wire(c.RootView, a.scheduleUpdate, a.exitHandler)
	c.RootView.Build(c.Handlers(a.exitHandler))

	a.scheduleUpdate()
	tk.App.Wait()
	return nil
}

func (a *App) update() {
	if a.ctx != nil && a.ctx.Err() != nil {
		a.exitHandler()
		return
	}
	a.c.Loop.Tick()
}

func (a *App) exitHandler() {
	if a.closing {
		return
	}
	a.closing = true
	if !a.c.Session.Done() {
		_ = a.c.Session.Handle(scan.Quit{})
	}
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		tk.TclAfterCancel(a.afterID)
	}
	tk.Destroy(tk.App)
}

func (a *App) scheduleUpdate() {
	if a.closing {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = tk.TclAfter(a.tick, func() { a.update() })
}

func (a *App) runCV(ctx context.Context) (err error) {
	c := a.c
	win, err := cvview.NewWindow(cvview.Options{
		Title:     a.title,
		Tick:      a.tick,
		Threshold: c.Session.Settings().Threshold(),
		Offset:    c.Session.Settings().AxisOffset(),
	}, c.Logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, win.Close()) }()
	c.Wire(win, nil, nil)
	return win.Run(ctx, c.Commands, cvview.Hooks{
		Tick:   c.Loop.Tick,
		Done:   c.Session.Done,
		Toggle: c.PlaybackPresenter.Toggle,
	})
}
