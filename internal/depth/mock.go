package depth

import (
	"context"
	"math"
	"math/rand"
	"time"

	"proximity-radar.klederson.com/internal/config"
)

// MockSource synthesizes depth frames of a surface that glides between
// stops and holds at each one. Used in demo mode.
type MockSource struct {
	interval time.Duration
	phase    float64
	band     *Deadband
	holding  bool
	sink     Sink
	cancel   context.CancelFunc
}

// NewMockSource creates a demo source reading one frame per interval.
func NewMockSource(interval time.Duration) *MockSource {
	return &MockSource{
		interval: interval,
		phase:    rand.Float64() * 2 * math.Pi,
		band:     NewDeadband(config.MockDeadband),
	}
}

func (s *MockSource) Name() string { return config.SourceDemo }

// Start begins the frame loop in a goroutine.
func (s *MockSource) Start(sink Sink) error {
	s.sink = sink

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockSource) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t += s.interval.Seconds()
			d, ok := s.next(t, (rand.Float64()-0.5)*config.MockNoise)
			if !ok {
				continue
			}
			s.sink(Sample{Meters: d, Source: s.Name(), At: now})
		}
	}
}

// next reads the center of the frame at time t and reports whether it
// should be sent. Arriving at a stop always sends, so the held distance
// is exact; while holding, noise stays inside the deadband.
func (s *MockSource) next(t, noise float64) (float64, bool) {
	d, holding := mockPath(t, s.phase)
	frame := SyntheticFrame(config.MockFrameWidth, config.MockFrameHeight, math.Max(0, d+noise))
	center, ok := frame.Center()
	if !ok {
		return 0, false
	}

	arrived := holding && !s.holding
	s.holding = holding
	if arrived {
		s.band.Force(center)
		return center, true
	}
	return center, s.band.Pass(center)
}

// mockPath is the noiseless demo surface at time t: a glide of MockGlide
// from the previous stop, then a hold of MockDwell.
func mockPath(t, phase float64) (meters float64, holding bool) {
	segment := (config.MockGlide + config.MockDwell).Seconds()
	k := math.Floor(t / segment)
	into := t - k*segment

	to := mockStop(k, phase)
	glide := config.MockGlide.Seconds()
	if into >= glide {
		return to, true
	}
	from := mockStop(k-1, phase)
	return from + (to-from)*into/glide, false
}

// mockStop places stop k between 0.3 m and 6 m.
func mockStop(k, phase float64) float64 {
	return 3.15 + 2.85*math.Sin(k*1.3+phase)
}

// SyntheticFrame builds a depth map of a slightly tilted plane whose
// center pixel reads exactly center meters.
func SyntheticFrame(width, height int, center float64) Frame {
	f := Frame{Width: width, Height: height, Depth: make([]float32, width*height)}
	cx, cy := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tilt := 0.01*float64(x-cx) + 0.02*float64(y-cy)
			f.Depth[x+y*width] = float32(math.Max(0, center+tilt))
		}
	}
	f.Depth[cx+cy*width] = float32(center)
	return f
}

// Stop halts the mock source.
func (s *MockSource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
