package alert

import (
	"sync"
	"time"

	"proximity-radar.klederson.com/internal/feedback"
)

// Recorder remembers the most recent pulse and beep so a display can
// flash indicators for them.
type Recorder struct {
	mu        sync.Mutex
	now       func() time.Time
	lastPulse time.Time
	lastTier  feedback.Tier
	lastBeep  time.Time
	pulses    int
	beeps     int
}

// NewRecorder creates a Recorder timestamping with now (time.Now if nil).
func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

func (r *Recorder) Pulse(tier feedback.Tier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPulse = r.now()
	r.lastTier = tier
	r.pulses++
	return nil
}

func (r *Recorder) Beep() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastBeep = r.now()
	r.beeps++
	return nil
}

func (r *Recorder) Silence() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastBeep = time.Time{}
	return nil
}

// Flash reports whether a pulse or beep happened within window of now,
// and the tier of the last pulse.
func (r *Recorder) Flash(window time.Duration) (pulse bool, tier feedback.Tier, beep bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	pulse = !r.lastPulse.IsZero() && now.Sub(r.lastPulse) < window
	beep = !r.lastBeep.IsZero() && now.Sub(r.lastBeep) < window
	return pulse, r.lastTier, beep
}

// Counts returns the number of pulses and beeps recorded.
func (r *Recorder) Counts() (pulses, beeps int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pulses, r.beeps
}
