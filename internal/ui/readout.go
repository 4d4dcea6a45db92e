package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/feedback"
	"proximity-radar.klederson.com/internal/radar"
)

// Readout is everything the readout panel shows.
type Readout struct {
	State   feedback.State
	Known   bool // a sample has arrived
	History []float64
	Pulse   bool
	Beep    bool
}

// RenderReadout renders the feedback readout panel: distance, tier,
// both alert periods, the fallback counter and a distance sparkline.
func RenderReadout(r Readout, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	st := r.State

	lines := []string{
		StylePanelTitle.Render("FEEDBACK"),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
		"",
	}

	distance := "--"
	if r.Known {
		distance = humanize.FtoaWithDigits(st.Distance, 2) + " m"
	}

	tier := lipgloss.NewStyle().Foreground(radar.TierColor(st.Tier)).Bold(true).Render(strings.ToUpper(st.Tier.String()))
	if r.Pulse {
		tier += StyleValue.Render(" ~")
	}

	beep := StyleDisabled.Render("disabled")
	if st.Periods.BeepEnabled() {
		beep = StyleValue.Render(formatPeriod(st.BeepEvery))
	}
	if r.Beep {
		beep += StyleValue.Render(" ♪")
	}

	fields := []struct{ label, value string }{
		{"Distance", StyleValue.Render(distance)},
		{"Tier", tier},
		{"Haptic", StyleValue.Render(formatPeriod(st.HapticEvery))},
		{"Beep", beep},
		{"Fallback", StyleValue.Render(fmt.Sprintf("%d/%d", st.PulseCounter, config.FallbackEvery))},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+f.value)
	}

	lines = append(lines, "")
	lines = append(lines, StyleLabel.Render("  Proximity ")+renderProximityBar(st.Distance, r.Known, innerW-14))
	lines = append(lines, "")

	s := st.Stats
	totals := []struct{ label, value string }{
		{"Pulses", fmt.Sprintf("%s (L%d M%d H%d)", humanize.Comma(int64(s.Pulses())), s.LightPulses, s.MediumPulses, s.HeavyPulses)},
		{"Beeps", fmt.Sprintf("%s (alarm %d, fallback %d)", humanize.Comma(int64(s.Beeps())), s.AlarmBeeps, s.FallbackBeeps)},
		{"Coalesced", humanize.Comma(int64(s.Coalesced))},
		{"Rearms", humanize.Comma(int64(s.Reschedules))},
	}
	for _, f := range totals {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+StyleMenuLabel.Render(f.value))
	}

	if len(r.History) > 0 {
		lines = append(lines, "")
		lines = append(lines, StyleLabel.Render("  Distance History:"))
		spark := renderSparkline(r.History, innerW-4)
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width-2, "")
	}
	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	style := StylePanelBorder
	if st.Active {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// formatPeriod renders an interval with its repeat rate.
func formatPeriod(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	hz := 1 / d.Seconds()
	return fmt.Sprintf("%s (%s)", d.Round(time.Millisecond), humanize.SIWithDigits(hz, 1, "Hz"))
}

// renderProximityBar fills from the far threshold inward: an empty bar
// is far away, a full bar is touching.
func renderProximityBar(distance float64, known bool, width int) string {
	if width < 10 {
		width = 10
	}
	ratio := 0.0
	if known && !math.IsNaN(distance) {
		ratio = 1 - distance/config.FarThreshold
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))

	color := radar.TierColor(feedback.TierFor(distance))
	filledPart := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng < 0.5 {
		rng = 0.5
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
