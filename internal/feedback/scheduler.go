package feedback

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"proximity-radar.klederson.com/internal/config"
)

// Haptics receives tactile pulse requests.
type Haptics interface {
	Pulse(tier Tier) error
}

// Beeper plays the short beep sound. Beep must not block on playback.
type Beeper interface {
	Beep() error
	Silence() error
}

// BeepOrigin tells which clock asked for a beep.
type BeepOrigin int

const (
	OriginAlarm BeepOrigin = iota
	OriginFallback
)

func (o BeepOrigin) String() string {
	if o == OriginFallback {
		return "fallback"
	}
	return "alarm"
}

// Options configures a Scheduler.
type Options struct {
	Clock   Clock
	Haptics Haptics
	Beeper  Beeper
	Logger  *slog.Logger

	// Post marshals alarm fires onto the scheduler's serial context.
	// Nil runs them inline on the clock's goroutine, which is only safe
	// when the clock itself is single-threaded.
	Post func(func())

	MinHapticPeriod time.Duration // Floor for the haptic interval
	BeepDuration    time.Duration // Window in which a second beep is coalesced; 0 disables
}

// Scheduler turns distance samples into haptic and beep alarms.
//
// A Scheduler is not safe for concurrent use. Every method, and every
// function it hands to Options.Post, must run on the same serial
// context.
type Scheduler struct {
	clock     Clock
	haptics   Haptics
	beeper    Beeper
	logger    *slog.Logger
	post      func(func())
	minHaptic time.Duration
	beepWin   time.Duration

	session  string
	distance float64
	periods  Periods
	pulses   int
	active   bool
	closed   bool

	gen      uint64
	haptic   Alarm
	beep     Alarm
	lastBeep time.Time

	stats Stats
}

// New creates an idle scheduler at the default distance.
func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = WallClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Post == nil {
		opts.Post = func(fn func()) { fn() }
	}
	if opts.MinHapticPeriod <= 0 {
		opts.MinHapticPeriod = config.MinHapticPeriod
	}
	if opts.BeepDuration < 0 {
		opts.BeepDuration = 0
	}

	return &Scheduler{
		clock:     opts.Clock,
		haptics:   opts.Haptics,
		beeper:    opts.Beeper,
		logger:    opts.Logger,
		post:      opts.Post,
		minHaptic: opts.MinHapticPeriod,
		beepWin:   opts.BeepDuration,
		distance:  config.DefaultDistance,
		periods:   MapDistance(config.DefaultDistance),
	}
}

// Start begins a session, arming alarms from the current distance.
// It reports false when already running or closed.
func (s *Scheduler) Start() bool {
	if s.closed || s.active {
		return false
	}

	s.session = newSessionID(s.clock.Now())
	s.active = true
	s.pulses = 0
	s.logger.Info("feedback session started",
		"session", s.session,
		"distance", s.distance)

	s.reschedule()
	return true
}

// Stop ends the session: both alarms are cancelled and playback is
// silenced. Calling Stop while idle does nothing.
func (s *Scheduler) Stop() {
	if !s.active {
		return
	}

	s.active = false
	s.cancelAlarms()
	s.pulses = 0
	s.lastBeep = time.Time{}

	if s.beeper != nil {
		if err := s.beeper.Silence(); err != nil {
			s.stats.OutputErrors++
			s.logger.Warn("silence beeper", "session", s.session, "error", err)
		}
	}

	s.logger.Info("feedback session stopped",
		"session", s.session,
		"pulses", s.stats.Pulses(),
		"beeps", s.stats.Beeps(),
		"coalesced", s.stats.Coalesced)
}

// Close tears the scheduler down. It stops any running session exactly
// once; the scheduler ignores all further calls.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.Stop()
	s.closed = true
}

// Update applies a distance sample. Both periods are replaced together
// and, while running, both alarms are re-armed.
func (s *Scheduler) Update(distance float64) {
	if s.closed {
		return
	}

	s.distance = distance
	s.periods = MapDistance(distance)
	s.stats.Samples++

	if s.active {
		s.reschedule()
	}
}

// reschedule cancels both alarms and arms a fresh pair from s.periods.
func (s *Scheduler) reschedule() {
	s.cancelAlarms()
	gen := s.gen

	s.haptic = s.clock.Every(s.periods.HapticInterval(s.minHaptic), s.deliver(gen, s.onHaptic))
	if s.periods.BeepEnabled() {
		s.beep = s.clock.Every(s.periods.BeepInterval(), s.deliver(gen, func() {
			s.onBeep(OriginAlarm)
		}))
	}
	s.stats.Reschedules++

	s.logger.Debug("alarms armed",
		"session", s.session,
		"distance", s.distance,
		"haptic", s.periods.HapticInterval(s.minHaptic),
		"beep", s.periods.BeepInterval())
}

// cancelAlarms stops both alarms and invalidates fires already queued
// on the serial context.
func (s *Scheduler) cancelAlarms() {
	s.gen++
	if s.haptic != nil {
		s.haptic.Stop()
		s.haptic = nil
		s.stats.HapticCancels++
	}
	if s.beep != nil {
		s.beep.Stop()
		s.beep = nil
		s.stats.BeepCancels++
	}
}

// deliver wraps an alarm handler so it runs on the serial context and
// only while its generation is current.
func (s *Scheduler) deliver(gen uint64, fn func()) func() {
	return func() {
		s.post(func() {
			if gen != s.gen || !s.active {
				s.stats.StaleFires++
				return
			}
			fn()
		})
	}
}

func (s *Scheduler) onHaptic() {
	tier := TierFor(s.distance)
	if tier == TierNone {
		return
	}

	if s.haptics != nil {
		if err := s.haptics.Pulse(tier); err != nil {
			s.stats.OutputErrors++
			s.logger.Warn("haptic pulse", "session", s.session, "tier", tier, "error", err)
		}
	}
	s.stats.countPulse(tier)

	s.pulses++
	if s.pulses >= config.FallbackEvery {
		s.pulses = 0
		s.onBeep(OriginFallback)
	}
}

func (s *Scheduler) onBeep(origin BeepOrigin) {
	if !inRange(s.distance) {
		return
	}

	now := s.clock.Now()
	if s.beepWin > 0 && !s.lastBeep.IsZero() && now.Sub(s.lastBeep) < s.beepWin {
		s.stats.Coalesced++
		return
	}

	if s.beeper != nil {
		if err := s.beeper.Beep(); err != nil {
			s.stats.OutputErrors++
			s.logger.Warn("beep", "session", s.session, "origin", origin, "error", err)
			return
		}
	}
	s.lastBeep = now

	if origin == OriginFallback {
		s.stats.FallbackBeeps++
	} else {
		s.stats.AlarmBeeps++
	}
}

// State is a snapshot of the scheduler.
type State struct {
	Session      string
	Active       bool
	Distance     float64
	Periods      Periods
	HapticEvery  time.Duration
	BeepEvery    time.Duration // 0 when beeps are disabled
	Tier         Tier
	PulseCounter int
	HapticArmed  bool
	BeepArmed    bool
	Stats        Stats
}

// State returns a snapshot of the current scheduler state.
func (s *Scheduler) State() State {
	return State{
		Session:      s.session,
		Active:       s.active,
		Distance:     s.distance,
		Periods:      s.periods,
		HapticEvery:  s.periods.HapticInterval(s.minHaptic),
		BeepEvery:    s.periods.BeepInterval(),
		Tier:         TierFor(s.distance),
		PulseCounter: s.pulses,
		HapticArmed:  s.haptic != nil,
		BeepArmed:    s.beep != nil,
		Stats:        s.stats,
	}
}

func newSessionID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
