package app

// DistanceRing keeps the most recent distance samples for the sparkline.
type DistanceRing struct {
	samples []float64
	limit   int
}

// NewDistanceRing creates a ring holding at most limit samples.
func NewDistanceRing(limit int) *DistanceRing {
	return &DistanceRing{samples: make([]float64, 0, limit), limit: limit}
}

// Push appends a sample, evicting the oldest once full.
func (r *DistanceRing) Push(meters float64) {
	if len(r.samples) == r.limit {
		copy(r.samples, r.samples[1:])
		r.samples = r.samples[:r.limit-1]
	}
	r.samples = append(r.samples, meters)
}

// Values returns a copy of the samples, oldest first, or nil when empty.
func (r *DistanceRing) Values() []float64 {
	if len(r.samples) == 0 {
		return nil
	}
	return append([]float64(nil), r.samples...)
}

func (r *DistanceRing) Len() int {
	return len(r.samples)
}
