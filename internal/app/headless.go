package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"proximity-radar.klederson.com/internal/alert"
	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/depth"
	"proximity-radar.klederson.com/internal/feedback"
)

// defaultLinger keeps alarms running after a finite replay ends so the
// last sample is heard.
const defaultLinger = 3 * time.Second

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	Source   depth.Source
	Beeper   feedback.Beeper
	Settings config.Settings
	Logger   *slog.Logger
	Clock    feedback.Clock
	Linger   time.Duration // after a finite replay; 0 uses the default
}

// RunHeadless drives the scheduler from a source without a UI until ctx
// is cancelled, the source fails, or a finite replay finishes. All
// scheduler work runs on a single feedback.Loop. The scheduler is torn
// down exactly once before returning.
func RunHeadless(ctx context.Context, opts HeadlessOptions) (feedback.Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	linger := opts.Linger
	if linger <= 0 {
		linger = defaultLinger
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	loop := feedback.NewLoop(config.SampleQueueDepth)
	post := func(fn func()) {
		if err := loop.Post(fn); err != nil {
			logger.Debug("dropped work after shutdown", "error", err)
		}
	}

	sched := feedback.New(feedback.Options{
		Clock:           opts.Clock,
		Haptics:         alert.NewLogHaptics(logger),
		Beeper:          opts.Beeper,
		Logger:          logger,
		Post:            post,
		MinHapticPeriod: opts.Settings.Feedback.MinHapticPeriod,
		BeepDuration:    opts.Settings.Feedback.BeepDuration,
	})

	post(func() { sched.Start() })

	src := opts.Source
	if err := src.Start(func(s depth.Sample) {
		post(func() {
			logger.Debug("distance sample", "source", s.Source, "meters", s.Meters)
			sched.Update(s.Meters)
		})
	}); err != nil {
		return feedback.Stats{}, fmt.Errorf("start %s source: %w", src.Name(), err)
	}
	defer src.Stop()

	watchSource(ctx, src, cancel, linger, logger)

	err := loop.Run(ctx)

	// The loop has exited; this goroutine is now the only one touching
	// the scheduler.
	sched.Close()
	stats := sched.State().Stats

	if cause := context.Cause(ctx); cause != nil && !isShutdown(cause) {
		return stats, cause
	}
	if err != nil && !isShutdown(err) {
		return stats, err
	}
	return stats, nil
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errReplayDone)
}

var errReplayDone = errors.New("replay finished")

// watchSource cancels ctx when the source fails or, for finite replays,
// shortly after the last sample.
func watchSource(ctx context.Context, src depth.Source, cancel context.CancelCauseFunc, linger time.Duration, logger *slog.Logger) {
	if f, ok := src.(depth.Failer); ok {
		go func() {
			select {
			case err := <-f.Failed():
				logger.Error("distance source failed", "source", src.Name(), "error", err)
				cancel(err)
			case <-ctx.Done():
			}
		}()
	}

	if r, ok := src.(*depth.ReplaySource); ok {
		go func() {
			select {
			case <-r.Done():
			case <-ctx.Done():
				return
			}
			select {
			case <-time.After(linger):
				logger.Info("replay finished")
				cancel(errReplayDone)
			case <-ctx.Done():
			}
		}()
	}
}
