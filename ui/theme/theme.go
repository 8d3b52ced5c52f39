package theme

// Palette and style initialization for the scanner UI.

import (
	"github.com/soocke/lscan-go/domain/scan"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626" // recording
	ColorAccent    = "#10b981" // mask preview
	ColorIdle      = "#64748b"
	ColorText      = "#1e293b"
	ColorTextLight = "#ffffff"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
)

// ModeColor returns the state label background for a session mode.
func ModeColor(m scan.Mode) string {
	switch m {
	case scan.ModeRecording:
		return ColorDanger
	case scan.ModeMaskPreview:
		return ColorAccent
	default:
		return ColorIdle
	}
}

// InitStyles activates the base theme and configures the button styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))
	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground(ColorTextLight),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground(ColorTextLight),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
}
