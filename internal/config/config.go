// Package config reads runtime settings from the environment.
//
// Every setting has a default, so an empty environment is valid:
//
//	VISION_LOG_LEVEL         logrus level name            (info)
//	VISION_CAMERA_INDEX      camera passed to the opener  (0)
//	VISION_PREVIEW_WIDTH     preview bound in pixels      (500)
//	VISION_PREVIEW_HEIGHT    preview bound in pixels      (400)
//	VISION_CAPTURE_INTERVAL  Go duration between ticks    (30ms)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvLogLevel        = "VISION_LOG_LEVEL"
	EnvCameraIndex     = "VISION_CAMERA_INDEX"
	EnvPreviewWidth    = "VISION_PREVIEW_WIDTH"
	EnvPreviewHeight   = "VISION_PREVIEW_HEIGHT"
	EnvCaptureInterval = "VISION_CAPTURE_INTERVAL"
)

// Config holds the settings shared by both binaries.
type Config struct {
	LogLevel        logrus.Level
	CameraIndex     int
	PreviewWidth    int
	PreviewHeight   int
	CaptureInterval time.Duration
}

// Default returns the settings used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:        logrus.InfoLevel,
		CameraIndex:     0,
		PreviewWidth:    500,
		PreviewHeight:   400,
		CaptureInterval: 30 * time.Millisecond,
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of
// os.LookupEnv. Unset variables keep their defaults; malformed ones are
// reported.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	var err error
	if cfg.CameraIndex, err = intVar(lookup, EnvCameraIndex, cfg.CameraIndex, 0); err != nil {
		return cfg, err
	}
	if cfg.PreviewWidth, err = intVar(lookup, EnvPreviewWidth, cfg.PreviewWidth, 1); err != nil {
		return cfg, err
	}
	if cfg.PreviewHeight, err = intVar(lookup, EnvPreviewHeight, cfg.PreviewHeight, 1); err != nil {
		return cfg, err
	}

	if v, ok := lookup(EnvCaptureInterval); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCaptureInterval, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("%s: interval %v must be positive", EnvCaptureInterval, d)
		}
		cfg.CaptureInterval = d
	}

	return cfg, nil
}

// intVar parses an integer variable no smaller than lowest.
func intVar(lookup func(string) (string, bool), name string, def, lowest int) (int, error) {
	v, ok := lookup(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	if n < lowest {
		return def, fmt.Errorf("%s: %d is below the minimum %d", name, n, lowest)
	}
	return n, nil
}
