package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/lscan-go/config"
	"github.com/soocke/lscan-go/domain/scan"
	"github.com/soocke/lscan-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats    RecordingStats
	Controls ControlPanel
	Preview  Preview

	// Widgets
	StateLabel  *LabelWidget
	StatusLabel *LabelWidget
	playBtn     *TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetStatus(text string)
	UpdatePreview(img image.Image)
	UpdateROI(img image.Image)
	SetRecording(pass, total time.Duration)
	SetProgress(frame, frames, points int)
	SetPlaying(playing bool)
}

// Handlers are invoked on user actions.
type Handlers struct {
	Controls   ControlHandlers
	OnKey      func(key string) // operator keys and the equivalent buttons
	OnPlayback func()
	OnExit     func()
}

// boundKeys are the operator keys bound on the root window.
var boundKeys = []string{"r", "a", "m", "e", "q"}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()
	key := func(k string) func() {
		return func() {
			if h.OnKey != nil {
				h.OnKey(k)
			}
		}
	}

	// Row 0: recording stats, mode label, buttons frame
	rv.Stats = NewRecordingStats(nil, 0, 0)
	rv.StateLabel = Label(Txt("Mode: <none>"), Borderwidth(1), Relief("ridge"),
		Foreground(theme.ColorTextLight), Background(theme.ColorIdle))
	Grid(rv.StateLabel, Row(0), Column(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(1), Column(4), Rowspan(6), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	buttons := []Widget{
		TButton(Txt("Record (r)"), Style(theme.StyleDangerButton), Command(key("r"))),
		TButton(Txt("Idle (a)"), Command(key("a"))),
		TButton(Txt("Mask (m)"), Command(key("m"))),
		TButton(Txt("Export (e)"), Style(theme.StylePrimaryButton), Command(key("e"))),
	}
	rv.playBtn = TButton(Txt("Pause"), Command(func() {
		if h.OnPlayback != nil {
			h.OnPlayback()
		}
	}))
	buttons = append(buttons, rv.playBtn, TButton(Txt("Exit"), Command(h.OnExit)))
	for i, b := range buttons {
		Grid(b, In(btnFrame), Row(i), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	for _, k := range boundKeys {
		Bind(App, "<KeyPress-"+k+">", Command(key(k)))
	}
	Bind(App, "<Escape>", Command(key("Escape")))
	Bind(App, "<KeyPress-space>", Command(func() {
		if h.OnPlayback != nil {
			h.OnPlayback()
		}
	}))

	rv.Controls = NewControlPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.Controls.Build(1, h.Controls)

	rv.StatusLabel = Label(Txt(""), Anchor("w"))
	Grid(rv.StatusLabel, Row(endRow), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"))
	rv.Preview = NewPreview(endRow + 1)
}

// SetStateLabel updates the mode label text and colors it by mode.
func (rv *RootView) SetStateLabel(text string) {
	if rv == nil || rv.StateLabel == nil {
		return
	}
	rv.StateLabel.Configure(Txt(text), Background(theme.ModeColor(labelMode(text))))
}

func labelMode(text string) scan.Mode {
	name := strings.TrimSpace(strings.TrimPrefix(text, "Mode:"))
	for _, m := range []scan.Mode{scan.ModeRecording, scan.ModeMaskPreview} {
		if m.String() == name {
			return m
		}
	}
	return scan.ModeIdle
}

// SetStatus shows the outcome of the last command or frame.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// UpdatePreview proxies to the underlying preview view.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// UpdateROI proxies to the underlying preview view.
func (rv *RootView) UpdateROI(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateROI(img)
	}
}

// SetRecording updates both pass and total recording durations.
func (rv *RootView) SetRecording(pass, total time.Duration) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetRecording(pass, total)
	}
}

func (rv *RootView) SetProgress(frame, frames, points int) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetProgress(frame, frames, points)
	}
}

// SetPlaying flips the pause button label.
func (rv *RootView) SetPlaying(playing bool) {
	if rv == nil || rv.playBtn == nil {
		return
	}
	if playing {
		rv.playBtn.Configure(Txt("Pause"))
		return
	}
	rv.playBtn.Configure(Txt("Resume"))
}

// PreviewReset clears the preview canvas.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}
