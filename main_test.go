package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/lscan-go/config"
)

type captured struct {
	cfg     *config.Config
	cfgPath string
	paths   []string
}

func runCLI(t *testing.T, args ...string) (*captured, error) {
	t.Helper()
	got := &captured{}
	app := newCLI(func(_ context.Context, cfg *config.Config, cfgPath string, paths []string) error {
		got.cfg, got.cfgPath, got.paths = cfg, cfgPath, paths
		return nil
	})
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	err := app.RunContext(context.Background(), append([]string{"lscan"}, args...))
	return got, err
}

func TestCLI_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lscan.json")
	data, _ := json.Marshal(map[string]any{"threshold_low": 50, "axis_offset": -3, "out_file": "from-json.wrl"})
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvThresholdLow, "40")
	t.Setenv(config.EnvOutFile, "from-env.pcd")

	got, err := runCLI(t, "--config", cfgPath, "--env-file", "", "--threshold-high", "200", "--roi", "10,0,5,6", "--headless", "b.png", "a.png")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	c := got.cfg
	if c.ThresholdLow != 40 || c.ThresholdHigh != 200 || c.AxisOffset != -3 {
		t.Fatalf("unexpected scan params %+v", c)
	}
	if c.OutFile != "from-env.pcd" || c.ExportFormat() != config.FormatPCD {
		t.Fatalf("env should override json out file, got %q", c.OutFile)
	}
	if c.ROIX != 10 || c.ROIY != 0 || c.ROIW != 5 || c.ROIH != 6 || !c.Headless {
		t.Fatalf("flags not applied: %+v", c)
	}
	if diff := cmp.Diff([]string{"b.png", "a.png"}, got.paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
	if got.cfgPath != cfgPath {
		t.Fatalf("unexpected config path %q", got.cfgPath)
	}
}

func TestCLI_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.json")
	if _, err := runCLI(t, "--config", missing, "--env-file", ""); !errors.Is(err, errNoInput) {
		t.Fatalf("expected errNoInput, got %v", err)
	}
	if _, err := runCLI(t, "--config", missing, "--env-file", "", "--cam-angle", "0", "a.png"); !errors.Is(err, config.ErrCamAngle) {
		t.Fatalf("expected ErrCamAngle, got %v", err)
	}
	if _, err := runCLI(t, "--config", missing, "--env-file", "", "--roi", "1,2,3", "a.png"); err == nil {
		t.Fatal("expected roi parse error")
	}
}

func TestCLI_StopsOnBadEnv(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.json")
	t.Setenv(config.EnvCamAngle, "3O")
	got, err := runCLI(t, "--config", missing, "--env-file", "", "a.png")
	if !errors.Is(err, config.ErrEnv) {
		t.Fatalf("expected ErrEnv, got %v", err)
	}
	if got.cfg != nil {
		t.Fatalf("scan started with a bad environment: %+v", got.cfg)
	}
}

func TestParseROI(t *testing.T) {
	x, y, w, h, err := parseROI(" 4, 5 ,6,7")
	if err != nil || x != 4 || y != 5 || w != 6 || h != 7 {
		t.Fatalf("parseROI: %d %d %d %d %v", x, y, w, h, err)
	}
	for _, bad := range []string{"", "1,2,3,x", "1,2,0,4"} {
		if _, _, _, _, err := parseROI(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLoggerIsJSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo).Debug("hidden")
	newLogger(&buf, slog.LevelInfo).Info("shown", "k", 1)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "shown" || rec["app"] != "lscan" {
		t.Fatalf("unexpected record %v", rec)
	}
}
