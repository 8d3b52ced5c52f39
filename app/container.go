package app

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/lscan-go/config"
	"github.com/soocke/lscan-go/domain/cvscan"
	"github.com/soocke/lscan-go/domain/export"
	"github.com/soocke/lscan-go/domain/frames"
	"github.com/soocke/lscan-go/domain/scan"
	"github.com/soocke/lscan-go/ui/model"
	"github.com/soocke/lscan-go/ui/presenter"
	"github.com/soocke/lscan-go/ui/view"
)

// Container assembles the frame source, session, models, presenters and the root view.
type Container struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Frames   *frames.Sequence
	Session  *scan.Session
	Exporter *export.FileExporter

	Recording *model.RecordingModel
	Playback  *model.PlaybackModel
	LastFrame *model.FrameModel

	RootView *view.RootView
	UI       view.UI

	// Presenters
	ScanPresenter      *presenter.ScanPresenter
	ModePresenter      *presenter.ModePresenter
	RecordingPresenter *presenter.RecordingPresenter
	PlaybackPresenter  *presenter.PlaybackPresenter
	Commands           *presenter.CommandPresenter
	Loop               *presenter.Loop
}

// BuildContainer validates cfg and constructs the scan components for paths. Any error is a
// configuration error: nothing has been processed yet.
func BuildContainer(cfg *config.Config, logger *slog.Logger, paths []string, cfgPath string) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	decode := frames.Decoder(frames.DecodeFile)
	var locator scan.LocatorContract = scan.NewLocator()
	if cfg.Backend == config.BackendOpenCV {
		l, err := cvscan.Open()
		if err != nil {
			return nil, err
		}
		locator, decode = l, frames.DecodeOpenCV
	}
	seq, err := frames.NewSequence(logger, paths, cfg.FrameCacheSize, decode)
	if err != nil {
		return nil, err
	}
	settings, err := scan.NewSettings(scan.Threshold{Low: cfg.ThresholdLow, High: cfg.ThresholdHigh}, cfg.AxisOffset, cfg.SnapROIToAxis)
	if err != nil {
		return nil, err
	}
	tri, err := scan.NewTriangulator(cfg.CamAngleDeg)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.ExportFormat())
	if err != nil {
		return nil, err
	}
	exp, err := export.NewFileExporter(logger, cfg.OutFile, format)
	if err != nil {
		return nil, err
	}
	sess, err := scan.NewSession(logger, seq, settings, tri, locator, exp)
	if err != nil {
		return nil, err
	}
	c := &Container{
		Config:    cfg,
		CfgPath:   cfgPath,
		Logger:    logger,
		Frames:    seq,
		Session:   sess,
		Exporter:  exp,
		Recording: model.NewRecordingModel(),
		Playback:  model.NewPlaybackModel(true),
		LastFrame: model.NewFrameModel(),
	}
	if cfg.HasROI() {
		if err := c.initialROI(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// initialROI defines the configured rectangle through the session commands.
func (c *Container) initialROI() error {
	cfg := c.Config
	r := image.Rect(cfg.ROIX, cfg.ROIY, cfg.ROIX+cfg.ROIW, cfg.ROIY+cfg.ROIH)
	if err := c.Session.Handle(scan.ReplaceROI{Anchor: r.Min, Corner: r.Max}); err != nil {
		return fmt.Errorf("initial roi %v: %w", r, err)
	}
	return nil
}

// Close releases the decoded frames once the frontend has stopped.
func (c *Container) Close() {
	if c.Frames == nil {
		return
	}
	st := c.Frames.Stats()
	c.Frames.Purge()
	if c.Logger != nil {
		c.Logger.Debug("frame cache released", "decodes", st.Decodes, "hits", st.Hits, "cached", st.Cached)
	}
}

// Wire builds the presenters against ui. A nil ui runs the presenters without a view.
// schedule is called after each loop tick, onDone once when the session closes.
func (c *Container) Wire(ui view.UI, schedule func(), onDone func()) {
	c.UI = ui
	var (
		preview  presenter.PreviewView
		status   presenter.StatusView
		state    presenter.StateView
		rec      presenter.RecordingView
		playback presenter.PlaybackView
	)
	if ui != nil {
		preview, status, state, rec, playback = ui, ui, ui, ui, ui
	}
	c.ModePresenter = presenter.NewModePresenter(state)
	c.Session.AddListener(c.ModePresenter.OnMode)
	c.PlaybackPresenter = presenter.NewPlaybackPresenter(c.Playback, playback)
	c.Commands = presenter.NewCommandPresenter(c.Session, status, c.Logger)
	c.ScanPresenter = presenter.NewScanPresenter(c.Playback.Enabled, c.Session, preview, status, c.LastFrame, onDone, c.Logger)
	c.RecordingPresenter = presenter.NewRecordingPresenter(c.Session, c.Recording, c.LastFrame, rec)
	c.Loop = presenter.NewLoop(c.ScanPresenter, c.ModePresenter, c.RecordingPresenter, schedule)
}

// Handlers binds root view actions to the command and playback presenters. Wire must run first.
func (c *Container) Handlers(onExit func()) view.Handlers {
	return view.Handlers{
		Controls: view.ControlHandlers{
			OnThreshold: func(low, high string) { _ = c.Commands.Threshold(low, high) },
			OnOffset:    func(offset string) { _ = c.Commands.Offset(offset) },
			OnROI:       func(anchor, corner string) { _ = c.Commands.ROI(anchor, corner) },
			OnClearROI:  func() { _ = c.Commands.Dispatch(scan.ClearROI{}) },
		},
		OnKey:      func(key string) { _ = c.Commands.Key(key) },
		OnPlayback: c.PlaybackPresenter.Toggle,
		OnExit:     onExit,
	}
}
