package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	missedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	severityLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	severityMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	severityHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Severity colours a 1-10 severity.
func Severity(s int) string {
	text := lipgloss.NewStyle().Width(2).Align(lipgloss.Right).Render(strconv.Itoa(s))
	switch {
	case s >= 8:
		return severityHigh.Render(text)
	case s >= 5:
		return severityMid.Render(text)
	default:
		return severityLow.Render(text)
	}
}
