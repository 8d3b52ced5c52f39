package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/lscan-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ControlHandlers receive raw field text from the control panel.
type ControlHandlers struct {
	OnThreshold func(low, high string)
	OnOffset    func(offset string)
	OnROI       func(anchor, corner string)
	OnClearROI  func()
}

// ControlPanel encapsulates the scan parameter form.
// It owns its widgets; parameter changes go through the handlers, SaveConfig persists the fields.
type ControlPanel interface {
	Build(startRow int, h ControlHandlers) (endRow int) // constructs widgets starting at startRow, returns next free row
	SaveConfig() error
}

type controlPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	widgets map[string]*TextWidget // keyed by internal field id
}

// NewControlPanel creates the view bound to cfg.
func NewControlPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ControlPanel {
	return &controlPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *controlPanel) Build(startRow int, h ControlHandlers) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	button := func(text string, col int, fn func()) {
		b := Button(Txt(text), Command(fn))
		Grid(b, Row(row-1), Column(col), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	}

	makeRow("thresholdLow", "Threshold Low", strconv.Itoa(c.ThresholdLow))
	makeRow("thresholdHigh", "Threshold High", strconv.Itoa(c.ThresholdHigh))
	button("Apply Threshold", 2, func() {
		if h.OnThreshold != nil {
			h.OnThreshold(v.field("thresholdLow"), v.field("thresholdHigh"))
		}
	})
	makeRow("axisOffset", "Axis Offset (px)", strconv.Itoa(c.AxisOffset))
	button("Apply Offset", 2, func() {
		if h.OnOffset != nil {
			h.OnOffset(v.field("axisOffset"))
		}
	})
	anchor, corner := "", ""
	if c.HasROI() {
		anchor = fmt.Sprintf("%d,%d", c.ROIX, c.ROIY)
		corner = fmt.Sprintf("%d,%d", c.ROIX+c.ROIW, c.ROIY+c.ROIH)
	}
	makeRow("roiAnchor", "ROI Anchor (x,y)", anchor)
	makeRow("roiCorner", "ROI Corner (x,y)", corner)
	button("Set ROI", 2, func() {
		if h.OnROI != nil {
			h.OnROI(v.field("roiAnchor"), v.field("roiCorner"))
		}
	})
	button("Clear ROI", 3, func() {
		if h.OnClearROI != nil {
			h.OnClearROI()
		}
	})
	saveBtn := Button(Txt("Save Config"), Command(func() { _ = v.SaveConfig() }))
	Grid(saveBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *controlPanel) field(id string) string {
	w := v.widgets[id]
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

// SaveConfig copies the parseable fields into the config and writes it to cfgPath.
// Invalid combinations are rejected and the config is left unchanged.
func (v *controlPanel) SaveConfig() error {
	if v.cfg == nil {
		return nil
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		if i, err := strconv.Atoi(v.field(id)); err == nil {
			*dst = i
		}
	}
	assignInt("thresholdLow", &cfg.ThresholdLow)
	assignInt("thresholdHigh", &cfg.ThresholdHigh)
	assignInt("axisOffset", &cfg.AxisOffset)
	if x0, y0, ok := parsePair(v.field("roiAnchor")); ok {
		if x1, y1, ok := parsePair(v.field("roiCorner")); ok {
			cfg.ROIX, cfg.ROIY = min(x0, x1), min(y0, y1)
			cfg.ROIW, cfg.ROIH = max(x0, x1)-cfg.ROIX, max(y0, y1)-cfg.ROIY
		}
	}
	if err := cfg.Validate(); err != nil {
		if v.logger != nil {
			v.logger.Warn("config rejected", "error", err)
		}
		return err
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return err
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	return nil
}

func parsePair(s string) (int, int, bool) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}
