// Package cvview is the OpenCV preview window. The window itself needs the gocv build tag;
// without it NewWindow reports frames.ErrOpenCVUnavailable.
package cvview

import (
	"image"
	"strconv"
	"time"

	"github.com/soocke/lscan-go/domain/scan"
)

// OffsetBias centers the axis offset trackbar; position OffsetBias means offset 0.
const OffsetBias = 500

// Options configures the window and the initial trackbar positions.
type Options struct {
	Title     string
	Tick      time.Duration
	Threshold scan.Threshold
	Offset    int
}

// Controls receive operator input read from the window.
type Controls interface {
	Key(key string) error
	Threshold(lowText, highText string) error
	Offset(text string) error
	Rect(r image.Rectangle) error
}

// Hooks drive the scan loop from the window event loop.
type Hooks struct {
	Tick   func()      // one presenter loop iteration
	Done   func() bool // stop once the session is closed
	Toggle func()      // pause and resume playback
}

// KeyName maps a cv::waitKey code to the key names understood by the command presenter.
// It returns "" when no key was pressed or the key is not printable.
func KeyName(code int) string {
	if code < 0 {
		return ""
	}
	code &= 0xff
	switch {
	case code == 27:
		return "Escape"
	case code == ' ':
		return "space"
	case code > ' ' && code < 0x7f:
		return string(rune(code))
	}
	return ""
}

// trackbars remembers the last applied trackbar positions so only changes are sent.
type trackbars struct {
	low, high, offset int
}

// sync applies changed positions through c and records them.
func (t *trackbars) sync(c Controls, low, high, offsetPos int) error {
	var err error
	if low != t.low || high != t.high {
		err = c.Threshold(strconv.Itoa(low), strconv.Itoa(high))
		t.low, t.high = low, high
	}
	if offsetPos != t.offset {
		if oerr := c.Offset(strconv.Itoa(offsetPos - OffsetBias)); err == nil {
			err = oerr
		}
		t.offset = offsetPos
	}
	return err
}

// dispatch routes one decoded key: s selects an ROI, space toggles playback and everything
// else goes to the command presenter.
func dispatch(name string, c Controls, hooks Hooks, selectROI func() image.Rectangle) error {
	switch name {
	case "":
		return nil
	case "s":
		r := selectROI()
		if r.Empty() {
			return nil
		}
		return c.Rect(r)
	case "space", "p":
		if hooks.Toggle != nil {
			hooks.Toggle()
		}
		return nil
	}
	return c.Key(name)
}
