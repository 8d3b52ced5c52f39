package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/lscan-go/domain/scan"
)

// CommandHandler applies operator commands to the session.
type CommandHandler interface {
	Handle(cmd scan.Command) error
}

// CommandPresenter turns raw view input (keys, text fields) into session commands and
// reports the outcome on the status line.
type CommandPresenter struct {
	session CommandHandler
	status  StatusView
	logger  *slog.Logger
}

func NewCommandPresenter(session CommandHandler, status StatusView, logger *slog.Logger) *CommandPresenter {
	return &CommandPresenter{session: session, status: status, logger: logger}
}

// KeyCommand maps a key name to its command: r records, a returns to idle, m shows the mask,
// e exports and Escape or q quits.
func KeyCommand(key string) (scan.Command, bool) {
	switch key {
	case "r":
		return scan.StartRecording{}, true
	case "a":
		return scan.ToIdle{}, true
	case "m":
		return scan.ToMaskPreview{}, true
	case "e":
		return scan.Export{}, true
	case "Escape", "q":
		return scan.Quit{}, true
	}
	return nil, false
}

// Key dispatches the command bound to key. Unbound keys are ignored.
func (p *CommandPresenter) Key(key string) error {
	cmd, ok := KeyCommand(key)
	if !ok {
		return nil
	}
	return p.Dispatch(cmd)
}

// Dispatch applies one command and reports the outcome.
func (p *CommandPresenter) Dispatch(cmd scan.Command) error {
	if p == nil || p.session == nil {
		return nil
	}
	err := p.session.Handle(cmd)
	p.report(cmd, err)
	return err
}

func (p *CommandPresenter) report(cmd scan.Command, err error) {
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("command rejected", "command", cmd.String(), "error", err)
		}
		p.setStatus(fmt.Sprintf("%s: %v", cmd, err))
		return
	}
	if p.logger != nil {
		p.logger.Debug("command applied", "command", cmd.String())
	}
	p.setStatus(cmd.String())
}

func (p *CommandPresenter) setStatus(text string) {
	if p.status != nil {
		p.status.SetStatus(text)
	}
}

// Threshold applies both bounds from text as one update; a rejected band leaves the
// current threshold as it was.
func (p *CommandPresenter) Threshold(lowText, highText string) error {
	low, err := strconv.Atoi(strings.TrimSpace(lowText))
	if err != nil {
		return p.reject(scan.SetThresholdLow{}, err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(highText))
	if err != nil {
		return p.reject(scan.SetThresholdHigh{}, err)
	}
	return p.Dispatch(scan.SetThreshold{Threshold: scan.Threshold{Low: low, High: high}})
}

// Offset applies the axis offset from text.
func (p *CommandPresenter) Offset(text string) error {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return p.reject(scan.SetAxisOffset{}, err)
	}
	return p.Dispatch(scan.SetAxisOffset{Value: v})
}

// ROI replaces the current ROI with one anchored at anchor and, when corner is not empty,
// extended to corner. Points are written "x,y". A rejected ROI keeps the current one.
func (p *CommandPresenter) ROI(anchorText, cornerText string) error {
	anchor, err := ParsePoint(anchorText)
	if err != nil {
		return p.reject(scan.DefineROI{}, err)
	}
	corner := anchor
	if strings.TrimSpace(cornerText) != "" {
		if corner, err = ParsePoint(cornerText); err != nil {
			return p.reject(scan.ExtendROI{}, err)
		}
	}
	return p.Dispatch(scan.ReplaceROI{Anchor: anchor, Corner: corner})
}

// Rect replaces the current ROI with r, as selected on an image.
func (p *CommandPresenter) Rect(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	return p.Dispatch(scan.ReplaceROI{Anchor: r.Min, Corner: r.Max})
}

func (p *CommandPresenter) reject(cmd scan.Command, err error) error {
	if p != nil {
		p.report(cmd, err)
	}
	return err
}

// ParsePoint reads "x,y" (spaces allowed) into a point.
func ParsePoint(s string) (image.Point, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return image.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return image.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}
