package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/depth"
)

// NewSource builds the distance source named in the settings. The
// returned closer releases files the source reads from.
func NewSource(s config.Settings, logger *slog.Logger) (depth.Source, func() error, error) {
	noop := func() error { return nil }

	switch s.Source {
	case config.SourceDemo:
		return depth.NewMockSource(config.MockInterval), noop, nil

	case config.SourceManual:
		return depth.NewManualSource(config.DefaultDistance), noop, nil

	case config.SourceBLE:
		if s.BLE.Target == "" {
			return nil, nil, depth.ErrNoTarget
		}
		return depth.NewBLESource(s.BLE, logger), noop, nil

	case config.SourceReplay:
		r, closer, err := openReplay(s.Replay.Path)
		if err != nil {
			return nil, nil, err
		}
		return depth.NewReplaySource(r, s.Replay.Interval, s.Replay.Loop, logger), closer, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, s.Source)
}

func openReplay(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open replay: %w", err)
	}
	return f, f.Close, nil
}
