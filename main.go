package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/soocke/lscan-go/app"
	"github.com/soocke/lscan-go/config"
	"github.com/soocke/lscan-go/debug"
	"github.com/soocke/lscan-go/domain/frames"
)

const (
	// Flags.
	flagOutFile       = "outfile"
	flagFormat        = "format"
	flagConfig        = "config"
	flagEnvFile       = "env-file"
	flagCamAngle      = "cam-angle"
	flagThresholdLow  = "threshold-low"
	flagThresholdHigh = "threshold-high"
	flagOffset        = "offset"
	flagROI           = "roi"
	flagSnapROI       = "snap-roi"
	flagHeadless      = "headless"
	flagPreviewDir    = "preview-dir"
	flagUI            = "ui"
	flagBackend       = "backend"
	flagDebug         = "debug"

	defaultConfigPath = "lscan.json"
)

var errNoInput = errors.New("no input images given")

// runFunc receives the fully resolved configuration and the expanded frame paths.
type runFunc func(ctx context.Context, cfg *config.Config, cfgPath string, paths []string) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newCLI(run).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "lscan:", err)
		os.Exit(1)
	}
}

func newCLI(fn runFunc) *cli.App {
	return &cli.App{
		Name:      "lscan",
		Usage:     "reconstruct a point cloud from laser line images of a rotating object",
		ArgsUsage: "<image files or glob masks...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagOutFile, Aliases: []string{"o"}, Usage: "write the point cloud to `FILE`"},
			&cli.StringFlag{Name: flagFormat, Usage: "export format: wrl, asc, pcd or las (default from the file extension)"},
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Value: defaultConfigPath, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: flagEnvFile, Value: ".env", Usage: "load LSCAN_* variables from `FILE`"},
			&cli.Float64Flag{Name: flagCamAngle, Usage: "laser incidence angle in degrees"},
			&cli.IntFlag{Name: flagThresholdLow, Usage: "lower red threshold (0-255)"},
			&cli.IntFlag{Name: flagThresholdHigh, Usage: "upper red threshold (0-255)"},
			&cli.IntFlag{Name: flagOffset, Usage: "axis offset from the image center in pixels"},
			&cli.StringFlag{Name: flagROI, Usage: "initial region of interest `x,y,w,h`"},
			&cli.BoolFlag{Name: flagSnapROI, Usage: "place the ROI left edge on the rotation axis"},
			&cli.BoolFlag{Name: flagHeadless, Usage: "record one pass without a window and exit"},
			&cli.StringFlag{Name: flagPreviewDir, Usage: "write composed preview PNGs to `DIR` (headless)"},
			&cli.StringFlag{Name: flagUI, Usage: "preview window: tk or cv"},
			&cli.StringFlag{Name: flagBackend, Usage: "stripe detection backend: go or opencv"},
			&cli.BoolFlag{Name: flagDebug, Usage: "enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				_ = cli.ShowAppHelp(c)
				return errNoInput
			}
			cfgPath := c.String(flagConfig)
			cfg, err := loadConfig(c, cfgPath)
			if err != nil {
				return err
			}
			paths, err := frames.Expand(c.Args().Slice())
			if err != nil {
				return err
			}
			return fn(c.Context, cfg, cfgPath, paths)
		},
	}
}

// loadConfig resolves defaults, the JSON file, the .env file and LSCAN_* variables, then the
// flags that were set on the command line.
func loadConfig(c *cli.Context, cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(c.String(flagEnvFile)); err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := applyFlags(c, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(c *cli.Context, cfg *config.Config) error {
	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	setInt := func(name string, dst *int) {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if c.IsSet(name) {
			*dst = c.Bool(name)
		}
	}
	setString(flagOutFile, &cfg.OutFile)
	setString(flagFormat, &cfg.Format)
	setString(flagPreviewDir, &cfg.PreviewDir)
	setString(flagUI, &cfg.UI)
	setString(flagBackend, &cfg.Backend)
	setInt(flagThresholdLow, &cfg.ThresholdLow)
	setInt(flagThresholdHigh, &cfg.ThresholdHigh)
	setInt(flagOffset, &cfg.AxisOffset)
	setBool(flagSnapROI, &cfg.SnapROIToAxis)
	setBool(flagHeadless, &cfg.Headless)
	setBool(flagDebug, &cfg.Debug)
	if c.IsSet(flagCamAngle) {
		cfg.CamAngleDeg = c.Float64(flagCamAngle)
	}
	if c.IsSet(flagROI) {
		x, y, w, h, err := parseROI(c.String(flagROI))
		if err != nil {
			return err
		}
		cfg.ROIX, cfg.ROIY, cfg.ROIW, cfg.ROIH = x, y, w, h
	}
	return nil
}

// parseROI reads "x,y,w,h".
func parseROI(s string) (x, y, w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("roi %q: want x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		if vals[i], err = strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("roi %q: %w", s, err)
		}
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("roi %q: width and height must be positive", s)
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func run(ctx context.Context, cfg *config.Config, cfgPath string, paths []string) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfg.Debug {
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger)
	}
	c, err := app.BuildContainer(cfg, logger, paths, cfgPath)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return err
	}
	return app.NewApp("lscan", 1100, 800, c).Run(ctx)
}
