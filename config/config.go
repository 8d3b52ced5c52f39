package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Export formats understood by the exporter.
const (
	FormatVRML = "wrl"
	FormatASC  = "asc"
	FormatPCD  = "pcd"
	FormatLAS  = "las"
)

// Frontends and stripe detection backends.
const (
	UITk          = "tk"
	UICV          = "cv"
	BackendGo     = "go"
	BackendOpenCV = "opencv"
)

var (
	// ErrCamAngle is returned when the laser incidence angle has a zero sine.
	ErrCamAngle = errors.New("invalid incidence angle")
	// ErrThreshold is returned for thresholds outside 0..255 or with low > high.
	ErrThreshold = errors.New("invalid threshold")
	// ErrFormat is returned for an unknown export format.
	ErrFormat = errors.New("unknown export format")
	// ErrEnv is returned for an environment variable that cannot be parsed.
	ErrEnv = errors.New("invalid environment variable")
	// ErrMode is returned for an unknown frontend or backend.
	ErrMode = errors.New("unknown ui or backend")
)

// Config holds runtime configuration for scanning and export.
// Fields may be loaded from a JSON file and overridden by the environment and command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Output
	OutFile string `json:"out_file"`
	Format  string `json:"format"`

	// Scan parameters
	CamAngleDeg   float64 `json:"cam_angle_deg"`
	ThresholdLow  int     `json:"threshold_low"`
	ThresholdHigh int     `json:"threshold_high"`
	AxisOffset    int     `json:"axis_offset"`
	SnapROIToAxis bool    `json:"snap_roi_to_axis"`

	// Initial region of interest; zero width or height means none.
	ROIX int `json:"roi_x"`
	ROIY int `json:"roi_y"`
	ROIW int `json:"roi_w"`
	ROIH int `json:"roi_h"`

	// Frontend and detection backend
	UI       string `json:"ui"`
	Backend  string `json:"backend"`
	Headless bool   `json:"headless"`

	// Loop and resources
	TickMillis     int    `json:"tick_ms"`
	FrameCacheSize int    `json:"frame_cache_size"`
	PreviewDir     string `json:"preview_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		OutFile:        "splinescan.wrl",
		Format:         "",
		CamAngleDeg:    30,
		ThresholdLow:   65,
		ThresholdHigh:  255,
		AxisOffset:     0,
		SnapROIToAxis:  false,
		UI:             UITk,
		Backend:        BackendGo,
		TickMillis:     2,
		FrameCacheSize: 16,
	}
}

// HasROI reports whether an initial region of interest is configured.
func (c *Config) HasROI() bool { return c.ROIW > 0 && c.ROIH > 0 }

// ExportFormat returns the configured format, falling back to the output file extension.
func (c *Config) ExportFormat() string {
	if c.Format != "" {
		f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Format), "."))
		if f == "vrml" {
			return FormatVRML
		}
		return f
	}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.OutFile), ".")); ext {
	case FormatASC, FormatPCD, FormatLAS:
		return ext
	default:
		return FormatVRML
	}
}

// Validate clamps loop values to safe ranges and reports configuration errors
// that must stop a scan before it starts.
func (c *Config) Validate() error {
	if c.OutFile == "" {
		c.OutFile = "splinescan.wrl"
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 2
	}
	if c.FrameCacheSize <= 0 {
		c.FrameCacheSize = 16
	}
	if c.UI == "" {
		c.UI = UITk
	}
	if c.Backend == "" {
		c.Backend = BackendGo
	}
	if c.ROIW < 0 || c.ROIH < 0 {
		c.ROIW, c.ROIH = 0, 0
	}
	if s := math.Sin(c.CamAngleDeg * math.Pi / 180); math.IsNaN(s) || math.Abs(s) < 1e-12 {
		return fmt.Errorf("%w: %v degrees", ErrCamAngle, c.CamAngleDeg)
	}
	if c.ThresholdLow < 0 || c.ThresholdHigh > 255 || c.ThresholdLow > c.ThresholdHigh {
		return fmt.Errorf("%w: low=%d high=%d", ErrThreshold, c.ThresholdLow, c.ThresholdHigh)
	}
	if c.UI != UITk && c.UI != UICV {
		return fmt.Errorf("%w: ui %q", ErrMode, c.UI)
	}
	if c.Backend != BackendGo && c.Backend != BackendOpenCV {
		return fmt.Errorf("%w: backend %q", ErrMode, c.Backend)
	}
	switch c.ExportFormat() {
	case FormatVRML, FormatASC, FormatPCD, FormatLAS:
	default:
		return fmt.Errorf("%w: %q", ErrFormat, c.Format)
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
