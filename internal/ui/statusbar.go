package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"proximity-radar.klederson.com/internal/feedback"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st feedback.State, sweepDeg float64, lastErr string) string {
	status := "[" + sessionBadge(st.Active) + "]"

	session := "-"
	if st.Session != "" {
		session = st.Session[len(st.Session)-6:]
	}

	info := fmt.Sprintf(" Session: %s  Samples: %s  Pulses: %s  Beeps: %s  Sweep: %ddeg",
		session,
		humanize.Comma(int64(st.Stats.Samples)),
		humanize.Comma(int64(st.Stats.Pulses())),
		humanize.Comma(int64(st.Stats.Beeps())),
		int(sweepDeg))

	content := status + StyleStatusBar.Render(info)
	if lastErr != "" {
		content += "  " + StyleError.Render(lastErr)
	}

	inner := max(width-StyleStatusBar.GetHorizontalFrameSize(), 0)
	gap := max(inner-lipgloss.Width(content), 0)
	line := ansi.Truncate(content+strings.Repeat(" ", gap), inner, "…")
	return StyleStatusBar.Width(width).Render(line)
}
