package presenter

import (
	"time"

	"github.com/soocke/lscan-go/domain/scan"
)

// StateView sets the mode label in the view.
type StateView interface{ SetStateLabel(string) }

// ModePresenter receives mode transitions from the session listener and updates the view.
type ModePresenter struct {
	view    StateView
	latest  scan.Mode // last reflected mode
	shown   bool
	pending []scan.Mode
}

func NewModePresenter(view StateView) *ModePresenter {
	return &ModePresenter{view: view}
}

// OnMode queues a transitioned mode. It matches scan.ModeListener.
//
// The latest queued mode will be reflected on the next Tick.
func (p *ModePresenter) OnMode(prev, next scan.Mode) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick updates the view with the most recent queued mode and clears the queue.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if !p.shown {
		p.shown = true
		p.view.SetStateLabel("Mode: " + p.latest.String())
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStateLabel("Mode: " + last.String())
		}
	}
}
