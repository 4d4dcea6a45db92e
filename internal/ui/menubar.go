package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"proximity-radar.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, running bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"SPACE", " start/stop"},
		{"↑↓", " distance"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	right := sessionBadge(running) + "  " + StyleMenuLabel.Render(fmt.Sprintf("Source: %s", source))
	left := StyleMenuKey.Render(title) + menu

	inner := max(width-StyleMenuBar.GetHorizontalFrameSize(), 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Narrow terminal: drop the key hints first.
		left = StyleMenuKey.Render(title)
		gap = max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, inner, "")
	return StyleMenuBar.Width(width).Render(line)
}

func sessionBadge(running bool) string {
	if running {
		return StyleStatusRunning.Render("RUNNING")
	}
	return StyleStatusIdle.Render("IDLE")
}
