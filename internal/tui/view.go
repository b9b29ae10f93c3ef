package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/render"
	"github.com/julianstephens/habitlog/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateHabits:
		content = docStyle.Render(m.habits.View())
	case StateCoughs:
		content = docStyle.Render(m.coughs.View())
	case StateAddHabit, StateAddCough:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs()}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, content, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	now := m.clock()
	ds, err := stats.ComputeDashboardStats(m.tracker.Snapshot(), now, m.stats)
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}
	return docStyle.Render(render.Dashboard(ds, now, m.stats.WindowDays))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and all of its history?", m.habitToDeleteName)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
