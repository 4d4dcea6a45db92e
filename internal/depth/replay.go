package depth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"proximity-radar.klederson.com/internal/config"
)

// ReplaySource replays recorded distances, one value in meters per line.
// Blank lines and lines starting with '#' are skipped. Each line takes
// one interval; lines within ReplayDeadband of the last sent value are
// held rather than sent.
type ReplaySource struct {
	r        io.Reader
	interval time.Duration
	loop     bool
	band     *Deadband
	logger   *slog.Logger
	sink     Sink
	cancel   context.CancelFunc
	done     chan struct{}
	failed   chan error
}

// NewReplaySource creates a replay source reading from r. With loop set,
// the recorded values repeat after EOF.
func NewReplaySource(r io.Reader, interval time.Duration, loop bool, logger *slog.Logger) *ReplaySource {
	return &ReplaySource{
		r:        r,
		interval: interval,
		loop:     loop,
		band:     NewDeadband(config.ReplayDeadband),
		logger:   logger,
		done:     make(chan struct{}),
		failed:   make(chan error, 1),
	}
}

func (s *ReplaySource) Name() string { return config.SourceReplay }

// Start begins replaying in a goroutine.
func (s *ReplaySource) Start(sink Sink) error {
	s.sink = sink

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(ctx)
	return nil
}

// Done is closed when the replay has emitted every value and is not
// looping, or after Stop.
func (s *ReplaySource) Done() <-chan struct{} {
	return s.done
}

func (s *ReplaySource) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var recorded []float64
	scanner := bufio.NewScanner(s.r)
	line := 0
	for scanner.Scan() {
		line++
		v, ok, err := ParseSample(scanner.Text())
		if err != nil {
			s.logger.Warn("skipping replay line", "line", line, "error", err)
			continue
		}
		if !ok {
			continue
		}
		if s.loop {
			recorded = append(recorded, v)
		}
		if !s.emit(ctx, ticker, v) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("replay read failed", "error", err)
		s.failed <- fmt.Errorf("read replay: %w", err)
		return
	}

	for s.loop && len(recorded) > 0 {
		for _, v := range recorded {
			if !s.emit(ctx, ticker, v) {
				return
			}
		}
	}
}

func (s *ReplaySource) emit(ctx context.Context, ticker *time.Ticker, v float64) bool {
	select {
	case <-ctx.Done():
		return false
	case now := <-ticker.C:
		if s.band.Pass(v) {
			s.sink(Sample{Meters: v, Source: s.Name(), At: now})
		}
		return true
	}
}

// Failed yields the read error that ended the replay, if any.
func (s *ReplaySource) Failed() <-chan error {
	return s.failed
}

// ParseSample parses one replay line. It reports false for blank and
// comment lines.
func ParseSample(line string) (float64, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, false, nil
	}
	field := strings.TrimSuffix(strings.Fields(line)[0], "m")
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse distance %q: %w", field, err)
	}
	return v, true, nil
}

// Stop halts the replay.
func (s *ReplaySource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
