package depth

import (
	"math"
	"sync"
	"time"

	"proximity-radar.klederson.com/internal/config"
)

// ManualSource holds a distance that is moved by hand, one step at a time.
// Nudges are returned to the caller, which is already on the serial
// context that applies them; only the initial value goes through the sink.
type ManualSource struct {
	mu       sync.Mutex
	distance float64
	max      float64
}

// NewManualSource creates a manual source starting at initial meters.
func NewManualSource(initial float64) *ManualSource {
	return &ManualSource{distance: initial, max: config.ManualMaxRange}
}

func (s *ManualSource) Name() string { return config.SourceManual }

// Start emits the initial distance from a goroutine.
func (s *ManualSource) Start(sink Sink) error {
	sample := Sample{Meters: s.Distance(), Source: s.Name(), At: time.Now()}
	go sink(sample)
	return nil
}

// Nudge moves the distance by delta meters, clamped to [0, max].
func (s *ManualSource) Nudge(delta float64) Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := math.Round((s.distance+delta)*100) / 100
	s.distance = math.Max(0, math.Min(s.max, d))
	return Sample{Meters: s.distance, Source: s.Name(), At: time.Now()}
}

// Distance returns the current manual distance.
func (s *ManualSource) Distance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distance
}

func (s *ManualSource) Stop() {}
