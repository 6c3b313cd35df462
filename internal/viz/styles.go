package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	MetricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49")).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	barHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
	barMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	barLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// KeyValue renders an aligned label/value line for summary output.
func KeyValue(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// ProgressBar renders a fixed-width bar for ensemble progress.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return barHigh.Render(bar)
	case percent > 0.4:
		return barMid.Render(bar)
	default:
		return barLow.Render(bar)
	}
}
