package app

import (
	"log/slog"
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"proximity-radar.klederson.com/internal/alert"
	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/depth"
	"proximity-radar.klederson.com/internal/feedback"
	"proximity-radar.klederson.com/internal/radar"
	"proximity-radar.klederson.com/internal/ui"
)

// Options configures the TUI model.
type Options struct {
	Source   depth.Source
	Beeper   feedback.Beeper // extra beep channel, e.g. the terminal bell
	Settings config.Settings
	Logger   *slog.Logger
	Clock    feedback.Clock
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	sched    *feedback.Scheduler
	source   depth.Source
	manual   *depth.ManualSource
	recorder *alert.Recorder
	sweep    *radar.Sweep
	history  *DistanceRing
	logger   *slog.Logger

	post      func(func())
	closeOnce sync.Once
	known     bool
	lastErr   string
}

// Model is the root Bubble Tea model.
type Model struct {
	width  int
	height int

	shared *shared
}

// New creates the model and its scheduler. The scheduler stays idle
// until Start.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = feedback.WallClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	sh := &shared{
		source:   opts.Source,
		recorder: alert.NewRecorder(opts.Clock.Now),
		sweep:    radar.NewSweep(),
		history:  NewDistanceRing(config.HistorySize),
		logger:   opts.Logger,
		post:     func(fn func()) { fn() },
	}
	if manual, ok := opts.Source.(*depth.ManualSource); ok {
		sh.manual = manual
	}

	beepers := alert.Beepers{sh.recorder}
	if opts.Beeper != nil {
		beepers = append(beepers, opts.Beeper)
	}

	sh.sched = feedback.New(feedback.Options{
		Clock:           opts.Clock,
		Haptics:         alert.Haptics{sh.recorder, alert.NewLogHaptics(opts.Logger)},
		Beeper:          beepers,
		Logger:          opts.Logger,
		Post:            func(fn func()) { sh.post(fn) },
		MinHapticPeriod: opts.Settings.Feedback.MinHapticPeriod,
		BeepDuration:    opts.Settings.Feedback.BeepDuration,
	})

	return Model{shared: sh}
}

// Start binds the scheduler and the source to the program loop, starts
// the source and opens a session. Must be called before p.Run().
func (m *Model) Start(p *tea.Program) error {
	m.shared.post = func(fn func()) { p.Send(dispatchMsg(fn)) }

	if err := m.shared.source.Start(func(s depth.Sample) {
		p.Send(DistanceMsg(s))
	}); err != nil {
		return err
	}
	if f, ok := m.shared.source.(depth.Failer); ok {
		go func() {
			if err, ok := <-f.Failed(); ok {
				p.Send(SourceErrorMsg{Err: err})
			}
		}()
	}

	m.shared.sched.Start()
	return nil
}

// Close stops the session and the source. Safe to call more than once;
// only the first call has an effect. Call it from the program loop or
// after p.Run() has returned.
func (m Model) Close() {
	m.shared.closeOnce.Do(func() {
		m.shared.sched.Close()
		m.shared.source.Stop()
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.sweep.Update(time.Time(msg))
		return m, tickCmd()

	case DistanceMsg:
		m.apply(depth.Sample(msg))
		return m, nil

	case dispatchMsg:
		msg()
		return m, nil

	case SourceErrorMsg:
		m.shared.lastErr = msg.Err.Error()
		m.shared.logger.Error("distance source failed", "source", m.shared.source.Name(), "error", msg.Err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.Close()
		return m, tea.Quit

	case " ", "s", "S":
		if m.shared.sched.State().Active {
			m.shared.sched.Stop()
		} else {
			m.shared.sched.Start()
		}

	case "up", "k":
		if m.shared.manual != nil {
			m.apply(m.shared.manual.Nudge(config.ManualStep))
		}

	case "down", "j":
		if m.shared.manual != nil {
			m.apply(m.shared.manual.Nudge(-config.ManualStep))
		}
	}

	return m, nil
}

// apply feeds one sample to the scheduler. It runs on the program loop.
func (m Model) apply(s depth.Sample) {
	if !math.IsNaN(s.Meters) && !math.IsInf(s.Meters, 0) {
		m.shared.history.Push(s.Meters)
	}
	m.shared.known = true
	m.shared.sched.Update(s.Meters)
}

// State returns the scheduler snapshot.
func (m Model) State() feedback.State {
	return m.shared.sched.State()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing Proximity Radar..."
	}

	bodyH := m.height - 2 // menu + status
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 3 / 5
	if radarW < 30 {
		radarW = 30
	}
	readoutW := m.width - radarW
	if readoutW < 24 {
		readoutW = 24
		radarW = m.width - readoutW
	}

	st := m.shared.sched.State()
	pulse, tier, beep := m.shared.recorder.Flash(config.FlashDuration)

	menuBar := ui.RenderMenuBar(m.width, m.shared.source.Name(), st.Active)

	innerW := max(radarW-4, 5)
	innerH := max(bodyH-5, 3) // border, title and legend
	target := radar.Target{
		Distance: st.Distance,
		Known:    m.shared.known,
		Pulse:    pulse,
		Tier:     tier,
		Beep:     beep,
	}
	radarContent := radar.Render(innerW, innerH, target, m.shared.sweep)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radarContent, radar.RenderLegend(innerW), st.Active)

	readout := ui.RenderReadout(ui.Readout{
		State:   st,
		Known:   m.shared.known,
		History: m.shared.history.Values(),
		Pulse:   pulse,
		Beep:    beep,
	}, readoutW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, st, m.shared.sweep.Degrees(), m.shared.lastErr)

	return ui.ComposeLayout(menuBar, radarPanel, readout, statusBar)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
