package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/lscan-go/domain/scan"
	"github.com/soocke/lscan-go/ui/images"
	"github.com/soocke/lscan-go/ui/model"
)

// ScanSession is the part of the scan session the presenter drives.
type ScanSession interface {
	Step() (scan.FrameResult, error)
	Done() bool
}

// PreviewView describes the UI surface updated with each processed frame.
// Implementations must not retain img after returning; the preview buffer is reused.
type PreviewView interface {
	UpdatePreview(img image.Image)
	UpdateROI(img image.Image)
}

// StatusView shows one line of operator feedback.
type StatusView interface{ SetStatus(text string) }

// ScanPresenter steps the session once per tick and pushes the composed preview to the view.
type ScanPresenter struct {
	Enabled func() bool
	Session ScanSession
	View    PreviewView
	Status  StatusView
	Model   *model.FrameModel
	OnDone  func()
	logger  *slog.Logger

	doneSent bool
}

// NewScanPresenter constructs a scan presenter. A nil enabled func means always stepping.
func NewScanPresenter(enabled func() bool, session ScanSession, view PreviewView, status StatusView, m *model.FrameModel, onDone func(), logger *slog.Logger) *ScanPresenter {
	return &ScanPresenter{Enabled: enabled, Session: session, View: view, Status: status, Model: m, OnDone: onDone, logger: logger}
}

// Tick processes one frame unless paused. Once the session is done OnDone fires once.
func (p *ScanPresenter) Tick() {
	if p == nil || p.Session == nil {
		return
	}
	if p.Session.Done() {
		if !p.doneSent && p.OnDone != nil {
			p.doneSent = true
			p.OnDone()
		}
		return
	}
	if p.Enabled != nil && !p.Enabled() {
		return
	}
	res, err := p.Session.Step()
	if err != nil {
		if errors.Is(err, scan.ErrSessionClosed) {
			return
		}
		if p.logger != nil {
			p.logger.Error("scan step", "error", err)
		}
		p.setStatus(err.Error())
	}
	p.Model.Set(res)
	if res.Skipped {
		p.setStatus(fmt.Sprintf("skipped %s: %v", res.Name, res.Err))
	}
	if p.View == nil {
		return
	}
	if img := images.Compose(res); img != nil {
		p.View.UpdatePreview(img)
		images.Recycle(img)
	}
	if res.Frame != nil && !res.ROI.Empty() {
		if crop, _, err := images.CropROI(res.Frame, res.ROI); err == nil {
			p.View.UpdateROI(crop)
		}
	}
}

func (p *ScanPresenter) setStatus(text string) {
	if p.Status != nil {
		p.Status.SetStatus(text)
	}
}
