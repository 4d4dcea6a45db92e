package depth

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"proximity-radar.klederson.com/internal/config"
)

// BLESource tracks a single BLE peripheral and reports its estimated
// distance from advertisement RSSI.
type BLESource struct {
	adapter       *bluetooth.Adapter
	target        string
	measuredPower float64
	pathLossExp   float64
	alpha         float64
	throttle      time.Duration
	band          *Deadband
	logger        *slog.Logger
	failed        chan error

	mu       sync.Mutex
	sink     Sink
	running  bool
	rssi     float64
	seen     bool
	lastEmit time.Time
}

// NewBLESource creates a source for the peripheral at target
// (e.g. "AA:BB:CC:DD:EE:FF") on the default adapter.
func NewBLESource(s config.BLESettings, logger *slog.Logger) *BLESource {
	return &BLESource{
		adapter:       bluetooth.DefaultAdapter,
		target:        strings.ToUpper(strings.TrimSpace(s.Target)),
		measuredPower: s.MeasuredPower,
		pathLossExp:   s.PathLossExp,
		alpha:         s.Smoothing,
		throttle:      config.BLEScanThrottle,
		band:          NewDeadband(config.BLEDeadband),
		logger:        logger,
		failed:        make(chan error, 1),
	}
}

func (s *BLESource) Name() string { return config.SourceBLE }

// Start enables the adapter and scans in a goroutine.
func (s *BLESource) Start(sink Sink) error {
	if s.target == "" {
		return ErrNoTarget
	}

	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.mu.Lock()
	s.sink = sink
	s.running = true
	s.mu.Unlock()

	go func() {
		err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !strings.EqualFold(result.Address.String(), s.target) {
				return
			}
			s.observe(float64(result.RSSI), time.Now())
		})
		if err != nil {
			s.logger.Error("BLE scan stopped", "target", s.target, "error", err)
			s.failed <- fmt.Errorf("BLE scan: %w", err)
		}
	}()

	return nil
}

// observe smooths one RSSI reading and emits a sample, at most once per
// throttle interval and only when the distance moved past the deadband.
func (s *BLESource) observe(rssi float64, now time.Time) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if s.seen {
		s.rssi = s.rssi*(1-s.alpha) + rssi*s.alpha
	} else {
		s.rssi = rssi
		s.seen = true
	}
	if now.Sub(s.lastEmit) < s.throttle {
		s.mu.Unlock()
		return
	}
	dist := RSSIToDistance(s.rssi, s.measuredPower, s.pathLossExp)
	if !s.band.Pass(dist) {
		s.mu.Unlock()
		return
	}
	s.lastEmit = now
	sink := s.sink
	s.mu.Unlock()

	sink(Sample{Meters: dist, Source: s.Name(), At: now})
}

// Failed yields the error that ended the scan, if any.
func (s *BLESource) Failed() <-chan error {
	return s.failed
}

// Stop halts the BLE scan.
func (s *BLESource) Stop() {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	if wasRunning {
		_ = s.adapter.StopScan()
	}
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
