package feedback

// Stats counts scheduler activity across the lifetime of a Scheduler.
type Stats struct {
	Samples     int
	Reschedules int

	LightPulses  int
	MediumPulses int
	HeavyPulses  int

	AlarmBeeps    int
	FallbackBeeps int
	Coalesced     int // beeps dropped because one was still playing

	HapticCancels int
	BeepCancels   int
	StaleFires    int // fires dropped after their alarm was replaced
	OutputErrors  int
}

// Pulses returns the total number of pulses emitted.
func (s Stats) Pulses() int {
	return s.LightPulses + s.MediumPulses + s.HeavyPulses
}

// Beeps returns the total number of beeps played.
func (s Stats) Beeps() int {
	return s.AlarmBeeps + s.FallbackBeeps
}

func (s *Stats) countPulse(t Tier) {
	switch t {
	case TierLight:
		s.LightPulses++
	case TierMedium:
		s.MediumPulses++
	case TierHeavy:
		s.HeavyPulses++
	}
}
