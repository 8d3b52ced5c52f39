package presenter

// PlaybackModel provides playing state access.
type PlaybackModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// PlaybackView reflects the playing state, e.g. on the pause button.
type PlaybackView interface {
	SetPlaying(bool)
}

// PlaybackPresenter pauses and resumes the frame loop.
type PlaybackPresenter struct {
	model PlaybackModel
	view  PlaybackView
}

func NewPlaybackPresenter(model PlaybackModel, view PlaybackView) *PlaybackPresenter {
	return &PlaybackPresenter{model: model, view: view}
}

// Enable resumes stepping. Idempotent.
func (c *PlaybackPresenter) Enable() {
	if c == nil || c.model == nil {
		return
	}
	if c.model.Enabled() {
		return
	}
	c.model.SetEnabled(true)
	c.show(true)
}

// Disable pauses on the current frame. Idempotent.
func (c *PlaybackPresenter) Disable() {
	if c == nil || c.model == nil {
		return
	}
	if !c.model.Enabled() {
		return
	}
	c.model.SetEnabled(false)
	c.show(false)
}

// Toggle flips the playing state delegating to Enable/Disable.
func (c *PlaybackPresenter) Toggle() {
	if c == nil || c.model == nil {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}

func (c *PlaybackPresenter) show(playing bool) {
	if c.view != nil {
		c.view.SetPlaying(playing)
	}
}
