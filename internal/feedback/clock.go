package feedback

import (
	"sync"
	"time"
)

// Alarm is a cancellable repeating timer.
type Alarm interface {
	// Stop cancels all future fires. Safe to call more than once.
	Stop()
}

// Clock arms repeating alarms. fn runs on a goroutine owned by the
// clock; callers marshal work onto their own serial context.
type Clock interface {
	Now() time.Time
	Every(d time.Duration, fn func()) Alarm
}

// WallClock is a Clock backed by time.Ticker.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// Every starts a ticker that calls fn every d until stopped.
func (WallClock) Every(d time.Duration, fn func()) Alarm {
	a := &tickerAlarm{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go a.loop(fn)
	return a
}

type tickerAlarm struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (a *tickerAlarm) loop(fn func()) {
	for {
		select {
		case <-a.done:
			return
		case <-a.ticker.C:
			// Stop may have raced with the tick.
			select {
			case <-a.done:
				return
			default:
			}
			fn()
		}
	}
}

func (a *tickerAlarm) Stop() {
	a.once.Do(func() {
		a.ticker.Stop()
		close(a.done)
	})
}
