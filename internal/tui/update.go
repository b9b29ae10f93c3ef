package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/forms"
	"github.com/julianstephens/habitlog/internal/tui/components/coughlog"
	"github.com/julianstephens/habitlog/internal/tui/components/habitlist"
	"github.com/julianstephens/habitlog/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddHabit, StateAddCough:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habits.SetSize(msg.Width-4, msg.Height-6)
		m.coughs.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case habitlist.AddHabitMsg:
		m.habitFields = &forms.HabitFields{}
		m.form = forms.NewHabitForm(m.habitFields)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		m.toggleHabit(msg.ID, msg.Done)
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.habitToDeleteName = msg.Name
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case coughlog.AddCoughMsg:
		m.coughFields = &forms.CoughFields{}
		m.form = forms.NewCoughForm(m.coughFields)
		m.previousState = m.state
		m.state = StateAddCough
		return m, m.form.Init()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateDashboard && key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habits, cmd = m.habits.Update(msg)
	case StateCoughs:
		m.coughs, cmd = m.coughs.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddHabit {
			m.submitHabit()
		} else {
			m.submitCough()
		}
		m.state = m.previousState
		m.form = nil
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitHabit() {
	draft := m.habitFields.Draft()
	if _, err := m.tracker.HabitByName(draft.Name); err == nil {
		m.status = fmt.Sprintf("⚠ habit %q already exists", draft.Name)
		return
	}
	h, err := m.tracker.AddHabit(draft)
	if err != nil {
		m.status = "⚠ " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Added habit %q", h.Name)
}

func (m *Model) submitCough() {
	draft, err := m.coughFields.Draft(m.clock())
	if err != nil {
		m.status = "⚠ " + err.Error()
		return
	}
	l, err := m.tracker.AddCoughLog(draft)
	if err != nil {
		m.status = "⚠ " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Logged cough (severity %d)", l.Severity)
}

// toggleHabit records today's entry for id. Existing notes are carried
// over since logging replaces the whole entry.
func (m *Model) toggleHabit(id string, done bool) {
	today := utils.DayKey(m.clock())
	notes := ""
	if h, err := m.tracker.Habit(id); err == nil {
		if e, ok := h.Entry(today); ok {
			notes = e.Notes
		}
	}

	if _, err := m.tracker.LogHabitEntry(id, today, done, notes); err != nil {
		m.status = "⚠ " + err.Error()
		return
	}
	m.status = ""
	m.refresh()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.tracker.DeleteHabit(m.habitToDeleteID); err != nil && !errors.IsNotFound(err) {
			m.status = "⚠ " + err.Error()
		} else {
			m.status = fmt.Sprintf("Deleted habit %q", m.habitToDeleteName)
		}
		m.refresh()
	case key.Matches(keyMsg, m.keys.Cancel):
	default:
		return m, nil
	}

	m.habitToDeleteID = ""
	m.habitToDeleteName = ""
	m.state = m.previousState
	return m, nil
}
