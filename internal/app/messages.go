package app

import (
	"time"

	"proximity-radar.klederson.com/internal/depth"
)

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// DistanceMsg carries a sample from a source onto the program loop.
type DistanceMsg depth.Sample

// dispatchMsg runs a scheduler callback on the program loop.
type dispatchMsg func()

// SourceErrorMsg reports a source that failed after starting.
type SourceErrorMsg struct {
	Err error
}
