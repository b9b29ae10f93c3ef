package coughlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/stats"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Italic(true)

type AddCoughMsg struct{}

type Model struct {
	viewport viewport.Model
	add      key.Binding
	logs     []models.CoughLog
	now      time.Time
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log cough"),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.add) {
		return m, func() tea.Msg { return AddCoughMsg{} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.logs) == 0 {
		return "\n  No cough incidents logged.\n  Press 'a' to log one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetLogs shows every incident, newest first.
func (m *Model) SetLogs(logs []models.CoughLog, now time.Time) {
	m.logs = logs
	m.now = now
	m.Render()
}

func (m *Model) Render() {
	sorted, err := stats.RecentActivity(m.logs, len(m.logs))
	if err != nil {
		m.viewport.SetContent(err.Error())
		return
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d incidents", len(sorted))))
	b.WriteString("\n\n")
	for _, l := range sorted {
		b.WriteString(render.CoughLine(l, m.now))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
