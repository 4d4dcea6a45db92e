package alert

import (
	"io"
	"log/slog"
	"sync"

	"proximity-radar.klederson.com/internal/feedback"
)

// bel is the terminal bell control character.
const bel = "\a"

// Bell is a beeper that rings the terminal bell.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Beep() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, bel)
	return err
}

// Silence is a no-op: the bell cannot be cut short.
func (b *Bell) Silence() error { return nil }

// LogHaptics logs pulse requests. Terminals have no vibration motor.
type LogHaptics struct {
	logger *slog.Logger
}

func NewLogHaptics(logger *slog.Logger) *LogHaptics {
	return &LogHaptics{logger: logger}
}

func (h *LogHaptics) Pulse(tier feedback.Tier) error {
	h.logger.Debug("haptic pulse", "tier", tier)
	return nil
}

// Haptics fans a pulse out to several channels. Every channel is called;
// the first error is returned.
type Haptics []feedback.Haptics

func (hs Haptics) Pulse(tier feedback.Tier) error {
	var errs []error
	for _, h := range hs {
		if err := h.Pulse(tier); err != nil {
			errs = append(errs, err)
		}
	}
	return first(errs)
}

// Beepers fans a beep out to several channels.
type Beepers []feedback.Beeper

func (bs Beepers) Beep() error {
	var errs []error
	for _, b := range bs {
		if err := b.Beep(); err != nil {
			errs = append(errs, err)
		}
	}
	return first(errs)
}

func (bs Beepers) Silence() error {
	var errs []error
	for _, b := range bs {
		if err := b.Silence(); err != nil {
			errs = append(errs, err)
		}
	}
	return first(errs)
}

func first(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
