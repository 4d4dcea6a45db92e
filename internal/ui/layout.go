package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderRadarPanel frames the radar with a title and legend. The border
// brightens while a session is running.
func RenderRadarPanel(width, height int, radarContent, legend string, running bool) string {
	style := StylePanelBorder
	if running {
		style = StylePanelActive
	}
	content := strings.Join([]string{StylePanelTitle.Render("PROXIMITY"), radarContent, legend}, "\n")
	return style.Width(width - 2).Height(height - 2).Render(content)
}

// ComposeLayout stacks the menu bar, the radar and readout side by side,
// and the status bar.
func ComposeLayout(menuBar, radarPanel, readout, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, readout)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
