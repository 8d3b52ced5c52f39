package scan

import "image"

// Command is a discrete operator command. The set is closed: only types in this
// file implement it.
type Command interface {
	isCommand()
	String() string
}

type (
	// StartRecording resets the point cloud and frame index and enters ModeRecording.
	StartRecording struct{}
	// ToIdle enters ModeIdle keeping accumulated points.
	ToIdle struct{}
	// ToMaskPreview enters ModeMaskPreview.
	ToMaskPreview struct{}
	// SetThresholdLow updates the lower threshold bound.
	SetThresholdLow struct{ Value int }
	// SetThresholdHigh updates the upper threshold bound.
	SetThresholdHigh struct{ Value int }
	// SetThreshold replaces both bounds at once.
	SetThreshold struct{ Threshold Threshold }
	// SetAxisOffset updates the axis offset.
	SetAxisOffset struct{ Value int }
	// DefineROI anchors a new ROI.
	DefineROI struct{ Point image.Point }
	// ExtendROI drags the ROI corner.
	ExtendROI struct{ Point image.Point }
	// ReplaceROI swaps the ROI for one anchored at Anchor and extended to Corner.
	ReplaceROI struct{ Anchor, Corner image.Point }
	// ClearROI discards the ROI.
	ClearROI struct{}
	// Export writes the retained point cloud again.
	Export struct{}
	// Quit ends the session.
	Quit struct{}
)

func (StartRecording) isCommand()   {}
func (ToIdle) isCommand()           {}
func (ToMaskPreview) isCommand()    {}
func (SetThresholdLow) isCommand()  {}
func (SetThresholdHigh) isCommand() {}
func (SetThreshold) isCommand()     {}
func (SetAxisOffset) isCommand()    {}
func (DefineROI) isCommand()        {}
func (ExtendROI) isCommand()        {}
func (ReplaceROI) isCommand()       {}
func (ClearROI) isCommand()         {}
func (Export) isCommand()           {}
func (Quit) isCommand()             {}

func (StartRecording) String() string   { return "start_recording" }
func (ToIdle) String() string           { return "to_idle" }
func (ToMaskPreview) String() string    { return "to_mask_preview" }
func (SetThresholdLow) String() string  { return "set_threshold_low" }
func (SetThresholdHigh) String() string { return "set_threshold_high" }
func (SetThreshold) String() string     { return "set_threshold" }
func (SetAxisOffset) String() string    { return "set_axis_offset" }
func (DefineROI) String() string        { return "define_roi" }
func (ExtendROI) String() string        { return "extend_roi" }
func (ReplaceROI) String() string       { return "replace_roi" }
func (ClearROI) String() string         { return "clear_roi" }
func (Export) String() string           { return "export" }
func (Quit) String() string             { return "quit" }
