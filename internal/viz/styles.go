package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(45)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	statusManual  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
)

// trackBar renders the cart's position across the usable track as a bar,
// centered at zero.
func trackBar(x, xLimit float64, width int) string {
	pos := (x + xLimit) / (2 * xLimit)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	idx := int(pos * float64(width-1))
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == idx:
			b.WriteString("█")
		case i == width/2:
			b.WriteString("┼")
		default:
			b.WriteString("─")
		}
	}
	return b.String()
}
