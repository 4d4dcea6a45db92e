package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source names accepted by Settings.Source.
const (
	SourceDemo   = "demo"
	SourceReplay = "replay"
	SourceBLE    = "ble"
	SourceManual = "manual"
)

// ErrUnknownSource is returned by Validate for an unrecognized source name.
var ErrUnknownSource = errors.New("unknown distance source")

// Settings is the user-tunable configuration. Zero values are filled from
// the package constants by Defaults.
type Settings struct {
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	LogOutput string `yaml:"logOutput"`
	Source    string `yaml:"source"`

	Replay   ReplaySettings   `yaml:"replay"`
	BLE      BLESettings      `yaml:"ble"`
	Feedback FeedbackSettings `yaml:"feedback"`
}

// ReplaySettings configures the replay source.
type ReplaySettings struct {
	Path     string        `yaml:"path"` // "-" reads stdin
	Interval time.Duration `yaml:"interval"`
	Loop     bool          `yaml:"loop"`
}

// BLESettings configures the BLE beacon source.
type BLESettings struct {
	Target        string  `yaml:"target"` // peripheral address, e.g. "AA:BB:CC:DD:EE:FF"
	MeasuredPower float64 `yaml:"measuredPower"`
	PathLossExp   float64 `yaml:"pathLossExp"`
	Smoothing     float64 `yaml:"smoothing"`
}

// FeedbackSettings tunes the scheduler timing that the constants leave open.
type FeedbackSettings struct {
	MinHapticPeriod time.Duration `yaml:"minHapticPeriod"`
	BeepDuration    time.Duration `yaml:"beepDuration"`
	Bell            *bool         `yaml:"bell"`
}

// Defaults returns Settings populated from the package constants.
func Defaults() Settings {
	bell := true
	return Settings{
		LogLevel:  "info",
		LogFormat: "text",
		LogOutput: "",
		Source:    SourceDemo,
		Replay: ReplaySettings{
			Path:     "-",
			Interval: ReplayInterval,
		},
		BLE: BLESettings{
			MeasuredPower: MeasuredPower,
			PathLossExp:   PathLossExp,
			Smoothing:     SmoothingAlpha,
		},
		Feedback: FeedbackSettings{
			MinHapticPeriod: MinHapticPeriod,
			BeepDuration:    BeepDuration,
			Bell:            &bell,
		},
	}
}

// Load reads a YAML settings file on top of Defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, s.Validate()
}

// BellEnabled reports whether the terminal bell should sound on beeps.
func (s Settings) BellEnabled() bool {
	return s.Feedback.Bell == nil || *s.Feedback.Bell
}

// Validate checks the settings for values the runtime cannot use.
func (s Settings) Validate() error {
	switch s.Source {
	case SourceDemo, SourceReplay, SourceBLE, SourceManual:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, s.Source)
	}
	if s.Replay.Interval <= 0 {
		return fmt.Errorf("replay.interval must be positive, got %s", s.Replay.Interval)
	}
	if s.Feedback.MinHapticPeriod <= 0 {
		return fmt.Errorf("feedback.minHapticPeriod must be positive, got %s", s.Feedback.MinHapticPeriod)
	}
	if s.Feedback.BeepDuration < 0 {
		return fmt.Errorf("feedback.beepDuration must not be negative, got %s", s.Feedback.BeepDuration)
	}
	if s.BLE.PathLossExp <= 0 {
		return fmt.Errorf("ble.pathLossExp must be positive, got %g", s.BLE.PathLossExp)
	}
	if s.BLE.Smoothing <= 0 || s.BLE.Smoothing > 1 {
		return fmt.Errorf("ble.smoothing must be in (0, 1], got %g", s.BLE.Smoothing)
	}
	return nil
}
