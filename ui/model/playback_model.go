package model

// PlaybackModel tracks whether the frame loop is stepping. The zero value is paused and usable.
// All access happens on the UI thread.
type PlaybackModel struct{ playing bool }

// NewPlaybackModel returns a model in the given state.
func NewPlaybackModel(playing bool) *PlaybackModel { return &PlaybackModel{playing: playing} }

// Enabled reports whether playback is running.
func (m *PlaybackModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.playing
}

// SetEnabled stores the playing flag.
func (m *PlaybackModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.playing = b
}
