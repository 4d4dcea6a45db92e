package feedback

import (
	"context"
	"errors"
)

// ErrLoopClosed is returned by Post after the loop has exited.
var ErrLoopClosed = errors.New("feedback loop closed")

// Loop is a single-goroutine serial executor. Everything posted to it
// runs in order on the goroutine that called Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

// NewLoop creates a loop with the given queue depth.
func NewLoop(depth int) *Loop {
	return &Loop{
		queue: make(chan func(), depth),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and returns
// ErrLoopClosed once Run has returned.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Run executes posted functions until ctx is cancelled. Functions still
// queued at cancellation are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
