package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the sub-presenters and invokes a scheduler callback. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Scan      *ScanPresenter
	Mode      *ModePresenter
	Recording *RecordingPresenter
	Schedule  func()
}

func NewLoop(scan *ScanPresenter, mode *ModePresenter, rec *RecordingPresenter, schedule func()) *Loop {
	return &Loop{Scan: scan, Mode: mode, Recording: rec, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Scan != nil {
		l.Scan.Tick()
	}
	// Mode after Scan so a cycle completed by this step is reflected immediately.
	if l.Mode != nil {
		l.Mode.Tick(now)
	}
	if l.Recording != nil {
		l.Recording.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
