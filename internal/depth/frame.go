package depth

import "math"

// Frame is a row-major depth map in meters.
type Frame struct {
	Width  int
	Height int
	Depth  []float32
}

// At returns the depth at (x, y), or false when out of bounds.
func (f Frame) At(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, false
	}
	idx := x + y*f.Width
	if idx >= len(f.Depth) {
		return 0, false
	}
	return float64(f.Depth[idx]), true
}

// Center returns the depth of the center pixel (Width/2, Height/2).
// Frames with no data or a non-finite center value report false.
func (f Frame) Center() (float64, bool) {
	d, ok := f.At(f.Width/2, f.Height/2)
	if !ok || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}
