package config

import "time"

const (
	// Distance to interval mapping
	FarThreshold    = 5.0                   // Beeps disabled at or beyond this distance (meters)
	HapticDivisor   = 30.0                  // Haptic period = distance / HapticDivisor (seconds)
	BeepFloor       = 0.5                   // Minimum beep period (seconds)
	MinHapticPeriod = 20 * time.Millisecond // Floor for the haptic alarm interval
	DefaultDistance = 5.0                   // Distance assumed before the first sample

	// Pulse tiers (meters, lower bound inclusive)
	LightTierMin  = 3.0
	MediumTierMin = 2.0

	// Fallback beep
	FallbackEvery = 5                      // Haptic pulses per fallback beep
	BeepDuration  = 150 * time.Millisecond // Playback window of the beep sound

	// BLE RSSI to distance estimation
	MeasuredPower  = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp    = 2.5   // Path loss exponent (N)
	SmoothingAlpha = 0.3   // EMA smoothing factor (30% new, 70% old)

	// Sources
	MockFrameWidth   = 64
	MockFrameHeight  = 48
	MockInterval     = 100 * time.Millisecond // Demo depth frame cadence
	MockDwell        = 6 * time.Second        // Demo surface holds each stop longer than the slowest beep
	MockGlide        = 2 * time.Second        // Demo surface travel time between stops
	MockNoise        = 0.1                    // Peak-to-peak demo depth noise (meters)
	MockDeadband     = 0.15                   // Demo changes smaller than this are not sent
	ReplayInterval   = 250 * time.Millisecond // Replay sample cadence
	ReplayDeadband   = 0.05                   // Replayed changes smaller than this are not sent
	ManualStep       = 0.1                    // Meters per key press
	ManualMaxRange   = 8.0
	BLEScanThrottle  = 100 * time.Millisecond // BLE scan callback throttle
	BLEDeadband      = 0.25                   // Smoothed BLE changes smaller than this are not sent
	SampleQueueDepth = 64                     // Serial loop queue size

	// Radar display
	MaxRange      = 6.0  // Radar radius in meters
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	SweepSpeedRPM = 30   // Sweep rotations per minute (1 rotation per 2 seconds)
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second
	FlashDuration = 120 * time.Millisecond
	HistorySize   = 120 // Distance samples kept for the sparkline

	// App
	AppName    = "PROXIMITY-RADAR"
	AppVersion = "1.0"
	LogFile    = "proximity-radar.log"
)
