package scan

import "errors"

var (
	// ErrNoFrames is returned when a session is created without input images.
	ErrNoFrames = errors.New("no input images")

	// ErrNoExporter is returned when a session is created without an exporter.
	ErrNoExporter = errors.New("no exporter")

	// ErrIncidenceAngle is returned when sin(φ) is zero.
	ErrIncidenceAngle = errors.New("incidence angle has zero sine")

	// ErrROIExists is returned by Define while an ROI is already set.
	ErrROIExists = errors.New("roi already defined")

	// ErrNoROI is returned by Extend without a defined ROI.
	ErrNoROI = errors.New("roi not defined")

	// ErrAnchorLeftOfAxis is returned when an ROI anchor is not right of the axis projection.
	ErrAnchorLeftOfAxis = errors.New("roi anchor must lie right of the rotation axis")

	// ErrThresholdRange is returned for threshold values outside 0..255.
	ErrThresholdRange = errors.New("threshold out of range")

	// ErrThresholdOrder is returned when a threshold update would make low > high.
	ErrThresholdOrder = errors.New("threshold low above high")

	// ErrSessionClosed is returned for commands after Quit.
	ErrSessionClosed = errors.New("session closed")

	// ErrUnknownCommand is returned for command values the session does not handle.
	ErrUnknownCommand = errors.New("unknown command")
)
