package depth

import "math"

// Deadband drops readings that stay within width meters of the last
// reading it passed. Sources use it so that a held distance stops
// rearming the feedback alarms.
type Deadband struct {
	width  float64
	last   float64
	primed bool
}

// NewDeadband creates a filter passing changes of at least width meters.
// A width of 0 drops only exact repeats.
func NewDeadband(width float64) *Deadband {
	return &Deadband{width: width}
}

// Pass reports whether meters should be forwarded, and if so records it
// as the new reference. The first reading and any change into or out of
// NaN always pass.
func (d *Deadband) Pass(meters float64) bool {
	switch {
	case !d.primed:
	case math.IsNaN(meters) != math.IsNaN(d.last):
	case math.IsNaN(meters):
		return false
	case meters == d.last:
		return false
	case math.Abs(meters-d.last) < d.width:
		return false
	}
	d.last = meters
	d.primed = true
	return true
}

// Force records meters as the reference without filtering it.
func (d *Deadband) Force(meters float64) {
	d.last = meters
	d.primed = true
}
