package feedback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity-radar.klederson.com/internal/logging"
)

func TestLoopRunsPostedFuncsInOrder(t *testing.T) {
	l := NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var got []int
	finished := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Post(func() { close(finished) }))

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("loop did not drain")
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoopPostAfterExit(t *testing.T) {
	l := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = l.Run(ctx)

	assert.ErrorIs(t, l.Post(func() {}), ErrLoopClosed)
}

func TestLoopSerializesWallClockAlarms(t *testing.T) {
	l := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var mu sync.Mutex
	pulses := 0
	s := New(Options{
		Clock:   WallClock{},
		Haptics: hapticsFunc(func(Tier) error { mu.Lock(); pulses++; mu.Unlock(); return nil }),
		Post:    func(fn func()) { _ = l.Post(fn) },
		Logger:  logging.Discard(),
	})

	require.NoError(t, l.Post(func() {
		s.Update(0.6) // 20ms haptic floor
		s.Start()
	}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return pulses >= 3
	}, 2*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	require.NoError(t, l.Post(func() { s.Close(); close(stopped) }))
	<-stopped

	mu.Lock()
	after := pulses
	mu.Unlock()
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, pulses, "no pulses after close")
}

func TestWallClockAlarmStop(t *testing.T) {
	var mu sync.Mutex
	fires := 0
	a := WallClock{}.Every(5*time.Millisecond, func() {
		mu.Lock()
		fires++
		mu.Unlock()
	})

	time.Sleep(50 * time.Millisecond)
	a.Stop()
	a.Stop()

	mu.Lock()
	n := fires
	mu.Unlock()
	assert.Positive(t, n)

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, fires, n+1)
}

type hapticsFunc func(Tier) error

func (f hapticsFunc) Pulse(t Tier) error { return f(t) }
