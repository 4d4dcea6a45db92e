package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/depth"
	"proximity-radar.klederson.com/internal/feedback"
	"proximity-radar.klederson.com/internal/logging"
)

// idleClock arms alarms that never fire.
type idleClock struct {
	armed   int
	stopped int
}

type idleAlarm struct{ c *idleClock }

func (a idleAlarm) Stop() { a.c.stopped++ }

func (c *idleClock) Now() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

func (c *idleClock) Every(time.Duration, func()) feedback.Alarm {
	c.armed++
	return idleAlarm{c}
}

type stubSource struct {
	name    string
	stopped int
}

func (s *stubSource) Name() string           { return s.name }
func (s *stubSource) Start(depth.Sink) error { return nil }
func (s *stubSource) Stop()                  { s.stopped++ }

func newTestModel(t *testing.T, src depth.Source) (Model, *idleClock) {
	t.Helper()
	clock := &idleClock{}
	m := New(Options{
		Source:   src,
		Settings: config.Defaults(),
		Logger:   logging.Discard(),
		Clock:    clock,
	})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelDistanceMsgUpdatesScheduler(t *testing.T) {
	m, clock := newTestModel(t, &stubSource{name: "demo"})
	m.shared.sched.Start()
	require.Equal(t, 1, clock.armed) // 5 m default: haptic only

	m, _ = update(t, m, DistanceMsg{Meters: 2.5, Source: "demo"})

	st := m.State()
	assert.Equal(t, 2.5, st.Distance)
	assert.Equal(t, feedback.TierMedium, st.Tier)
	assert.True(t, st.BeepArmed)
	assert.Equal(t, 3, clock.armed)
	assert.Equal(t, 1, clock.stopped)
	assert.Equal(t, []float64{2.5}, m.shared.history.Values())
}

func TestModelSpaceTogglesSession(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "demo"})

	m, _ = update(t, m, key(" "))
	assert.True(t, m.State().Active)

	m, _ = update(t, m, key(" "))
	assert.False(t, m.State().Active)

	m, _ = update(t, m, key("s"))
	assert.True(t, m.State().Active)
}

func TestModelQuitTearsDownOnce(t *testing.T) {
	src := &stubSource{name: "demo"}
	m, clock := newTestModel(t, src)
	m.shared.sched.Start()

	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.State().Active)
	assert.Equal(t, 1, src.stopped)

	m.Close()
	assert.Equal(t, 1, src.stopped)
	assert.Equal(t, clock.armed, clock.stopped)

	// Closed: a late sample changes nothing.
	m, _ = update(t, m, DistanceMsg{Meters: 1})
	assert.Equal(t, 5.0, m.State().Distance)
}

func TestModelManualNudge(t *testing.T) {
	src := depth.NewManualSource(1.0)
	m, _ := newTestModel(t, src)

	m, _ = update(t, m, key("down"))
	assert.Equal(t, 0.9, m.State().Distance)

	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	assert.Equal(t, 1.1, m.State().Distance)
	assert.Equal(t, 3, m.shared.history.Len())
}

func TestModelNudgeIgnoredForOtherSources(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "demo"})
	m, _ = update(t, m, key("up"))
	assert.Zero(t, m.State().Stats.Samples)
}

func TestModelDispatchRunsOnLoop(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "demo"})
	ran := false
	m, _ = update(t, m, dispatchMsg(func() { ran = true }))
	assert.True(t, ran)
}

func TestModelSourceError(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "ble"})
	m, _ = update(t, m, SourceErrorMsg{Err: assert.AnError})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.Contains(t, m.View(), "assert.AnError")
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "demo"})
	assert.Contains(t, m.View(), "Initializing")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m, _ = update(t, m, DistanceMsg{Meters: 1.5})
	m, _ = update(t, m, key(" "))

	view := m.View()
	assert.Contains(t, view, "PROXIMITY-RADAR")
	assert.Contains(t, view, "RUNNING")
	assert.Contains(t, view, "HEAVY")
	assert.Contains(t, view, "@")
}

func TestModelTick(t *testing.T) {
	m, _ := newTestModel(t, &stubSource{name: "demo"})
	now := m.shared.sweep.StartTime.Add(250 * time.Millisecond)

	m, cmd := update(t, m, TickMsg(now))
	assert.NotNil(t, cmd)
	assert.InDelta(t, 45, m.shared.sweep.Degrees(), 1e-6)
}

func TestDistanceRing(t *testing.T) {
	r := NewDistanceRing(3)
	assert.Nil(t, r.Values())

	r.Push(1)
	r.Push(2)
	assert.Equal(t, []float64{1, 2}, r.Values())

	r.Push(3)
	r.Push(4)
	assert.Equal(t, []float64{2, 3, 4}, r.Values())
	assert.Equal(t, 3, r.Len())
}

func TestModelViewFillsWindow(t *testing.T) {
	for _, size := range []tea.WindowSizeMsg{{Width: 100, Height: 30}, {Width: 140, Height: 40}, {Width: 80, Height: 24}} {
		m, _ := newTestModel(t, &stubSource{name: "demo"})
		m, _ = update(t, m, size)
		m, _ = update(t, m, DistanceMsg{Meters: 2.2})
		m, _ = update(t, m, key(" "))

		view := m.View()
		assert.Equal(t, size.Height, lipgloss.Height(view), "%dx%d", size.Width, size.Height)
		assert.Equal(t, size.Width, lipgloss.Width(view), "%dx%d", size.Width, size.Height)
	}
}
