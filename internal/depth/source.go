package depth

import (
	"errors"
	"time"
)

// ErrNoTarget is returned when the BLE source has no peripheral to track.
var ErrNoTarget = errors.New("no BLE target address configured")

// Sample is one distance reading in meters.
type Sample struct {
	Meters float64
	Source string
	At     time.Time
}

// Sink receives samples. Sources call it from their own goroutines; the
// receiver marshals the sample onto its serial context.
type Sink func(Sample)

// Source produces distance samples until stopped.
type Source interface {
	Name() string
	Start(sink Sink) error
	Stop()
}

// Failer is implemented by sources that can fail after Start. The
// channel yields at most one error.
type Failer interface {
	Failed() <-chan error
}
