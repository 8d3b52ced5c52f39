package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvOutFile       = "LSCAN_OUT_FILE"
	EnvFormat        = "LSCAN_FORMAT"
	EnvCamAngle      = "LSCAN_CAM_ANGLE"
	EnvThresholdLow  = "LSCAN_THRESHOLD_LOW"
	EnvThresholdHigh = "LSCAN_THRESHOLD_HIGH"
	EnvAxisOffset    = "LSCAN_AXIS_OFFSET"
	EnvDebug         = "LSCAN_DEBUG"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overrides fields with LSCAN_* environment variables. Every unparsable value is
// reported and leaves its field unchanged.
func (c *Config) ApplyEnv() error {
	var err error
	c.OutFile = getEnv(EnvOutFile, c.OutFile)
	c.Format = getEnv(EnvFormat, c.Format)
	c.CamAngleDeg = getEnvAs(EnvCamAngle, c.CamAngleDeg, parseFloat, &err)
	c.ThresholdLow = getEnvAs(EnvThresholdLow, c.ThresholdLow, strconv.Atoi, &err)
	c.ThresholdHigh = getEnvAs(EnvThresholdHigh, c.ThresholdHigh, strconv.Atoi, &err)
	c.AxisOffset = getEnvAs(EnvAxisOffset, c.AxisOffset, strconv.Atoi, &err)
	c.Debug = getEnvAs(EnvDebug, c.Debug, strconv.ParseBool, &err)
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAs parses key with parse. A parse failure is appended to errs and defaultValue is kept.
func getEnvAs[T any](key string, defaultValue T, parse func(string) (T, error), errs *error) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	v, err := parse(value)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%w: %s=%q", ErrEnv, key, value))
		return defaultValue
	}
	return v
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
