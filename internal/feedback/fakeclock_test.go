package feedback

import (
	"errors"
	"time"
)

// manualClock is a single-threaded Clock driven by Advance.
type manualClock struct {
	now    time.Time
	alarms []*manualAlarm
}

type manualAlarm struct {
	period  time.Duration
	next    time.Time
	fn      func()
	stopped bool
	fires   int
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Every(d time.Duration, fn func()) Alarm {
	a := &manualAlarm{period: d, next: c.now.Add(d), fn: fn}
	c.alarms = append(c.alarms, a)
	return a
}

func (a *manualAlarm) Stop() { a.stopped = true }

// Advance moves time forward, firing due alarms in time order. Ties go
// to the alarm armed first.
func (c *manualClock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		var due *manualAlarm
		for _, a := range c.alarms {
			if a.stopped || a.next.After(end) {
				continue
			}
			if due == nil || a.next.Before(due.next) {
				due = a
			}
		}
		if due == nil {
			break
		}
		c.now = due.next
		due.next = due.next.Add(due.period)
		due.fires++
		due.fn()
	}
	c.now = end
}

// live returns the alarms that have not been stopped.
func (c *manualClock) live() []*manualAlarm {
	var out []*manualAlarm
	for _, a := range c.alarms {
		if !a.stopped {
			out = append(out, a)
		}
	}
	return out
}

type recorder struct {
	clock    *manualClock
	tiers    []Tier
	beeps    []time.Time
	silenced int

	pulseErr error
	beepErr  error
}

func (r *recorder) Pulse(t Tier) error {
	r.tiers = append(r.tiers, t)
	return r.pulseErr
}

func (r *recorder) Beep() error {
	if r.beepErr != nil {
		return r.beepErr
	}
	r.beeps = append(r.beeps, r.clock.Now())
	return nil
}

func (r *recorder) Silence() error {
	r.silenced++
	return nil
}

var errDevice = errors.New("device unavailable")
