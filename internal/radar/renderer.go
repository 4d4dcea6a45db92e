package radar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/feedback"
)

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")
	colorFar    = lipgloss.Color("#FFAA00")
	colorLight  = lipgloss.Color("#00FFAA")
	colorMedium = lipgloss.Color("#FFCC00")
	colorHeavy  = lipgloss.Color("#FF3300")

	styleCenter = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleBeep   = lipgloss.NewStyle().Foreground(colorHeavy).Bold(true)
	styleRing   = lipgloss.NewStyle().Foreground(colorMid)
	styleFar    = lipgloss.NewStyle().Foreground(colorFar)
	styleDot    = lipgloss.NewStyle().Foreground(colorDim)
	styleTarget = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleLegend = lipgloss.NewStyle().Foreground(colorMid)
)

// Target describes the tracked surface and the alerts currently flashing.
type Target struct {
	Distance float64
	Known    bool // false until the first sample arrives
	Pulse    bool // a haptic pulse fired within the flash window
	Tier     feedback.Tier
	Beep     bool // a beep fired within the flash window
}

// TierColor returns the display color for a pulse tier.
func TierColor(t feedback.Tier) lipgloss.Color {
	switch t {
	case feedback.TierHeavy:
		return colorHeavy
	case feedback.TierMedium:
		return colorMedium
	case feedback.TierLight:
		return colorLight
	default:
		return colorDim
	}
}

type layout struct {
	centerX, centerY int
	radius           float64
	rings            []float64
	farRing          float64
	targetCol        int
	targetRow        int
	targetRadius     float64
}

// Render produces the proximity radar as a styled string. Rings are one
// meter apart; the far threshold ring is highlighted and the target sits
// on the bearing axis at its distance.
func Render(width, height int, target Target, sweep *Sweep) string {
	if width < 10 || height < 5 {
		return ""
	}

	l := newLayout(width, height, target)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sb.WriteString(renderCell(col, row, l, target, sweep))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func newLayout(width, height int, target Target) layout {
	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	l := layout{centerX: centerX, centerY: centerY, radius: radius, targetCol: -1, targetRow: -1}
	for m := 1; m <= int(config.MaxRange); m++ {
		r := MetersToRadius(float64(m), config.MaxRange, radius)
		if float64(m) == config.FarThreshold {
			l.farRing = r
			continue
		}
		l.rings = append(l.rings, r)
	}

	if target.Known && !math.IsNaN(target.Distance) {
		l.targetRadius = MetersToRadius(target.Distance, config.MaxRange, radius)
		l.targetCol = centerX
		l.targetRow = centerY - int(math.Round(l.targetRadius*config.AspectRatio))
	}
	return l
}

func renderCell(col, row int, l layout, target Target, sweep *Sweep) string {
	if col == l.targetCol && row == l.targetRow {
		if target.Pulse {
			return lipgloss.NewStyle().Foreground(TierColor(target.Tier)).Bold(true).Render("@")
		}
		return styleTarget.Render("@")
	}

	if col == l.centerX && row == l.centerY {
		if target.Beep {
			return styleBeep.Render("*")
		}
		return styleCenter.Render("+")
	}

	dist := CellDistance(col, row, l.centerX, l.centerY)
	if dist > l.radius+0.5 {
		return " "
	}
	angle := CellAngle(col, row, l.centerX, l.centerY)

	if l.farRing > 0 && math.Abs(dist-l.farRing) < 0.8 {
		return styleFar.Render(string(RingChar(angle)))
	}

	for _, ringR := range l.rings {
		if math.Abs(dist-ringR) < 0.8 {
			ch := string(RingChar(angle))
			if target.Pulse && ringR <= l.targetRadius+0.5 {
				return lipgloss.NewStyle().Foreground(TierColor(target.Tier)).Render(ch)
			}
			return renderSweepChar(ch, sweep, angle)
		}
	}

	if col == l.centerX {
		return renderSweepChar("|", sweep, angle)
	}
	if row == l.centerY {
		return renderSweepChar("-", sweep, angle)
	}

	return renderSweepChar(".", sweep, angle)
}

func renderSweepChar(ch string, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		if ch == "." {
			return styleDot.Render(ch)
		}
		return styleRing.Render(ch)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(ch)
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int) string {
	legend := styleTarget.Render("@ target") + "  " +
		styleLegend.Render("rings 1m") + "  " +
		styleFar.Render("far 5m") + "  " +
		styleBeep.Render("* beep")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
