// Package tui is the full-screen terminal interface: a dashboard tab, a
// habit checklist for today and the cough incident log.
package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/forms"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/coughlog"
	"github.com/julianstephens/habitlog/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateHabits
	StateCoughs
	StateAddHabit
	StateAddCough
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = []string{"Dashboard", "Habits", "Coughs"}

// SaveErrors collects persistence failures reported by the tracker so
// they can be shown in the status line instead of on stderr.
type SaveErrors struct {
	mu   sync.Mutex
	last error
}

// Record is passed to tracker.WithSaveWarning.
func (s *SaveErrors) Record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = err
}

// Take returns and clears the most recent failure.
func (s *SaveErrors) Take() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.last
	s.last = nil
	return err
}

type Model struct {
	tracker  *tracker.Tracker
	stats    stats.Options
	clock    func() time.Time
	saveErrs *SaveErrors

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habits        habitlist.Model
	coughs        coughlog.Model

	form        *huh.Form
	habitFields *forms.HabitFields
	coughFields *forms.CoughFields

	habitToDeleteID   string
	habitToDeleteName string

	status   string
	quitting bool
	width    int
	height   int
}

// NewModel builds the interface over an open tracker. saveErrs may be nil.
func NewModel(t *tracker.Tracker, opts stats.Options, clock func() time.Time, saveErrs *SaveErrors) Model {
	if clock == nil {
		clock = time.Now
	}
	if saveErrs == nil {
		saveErrs = &SaveErrors{}
	}
	if opts == (stats.Options{}) {
		opts = stats.DefaultOptions()
	}

	now := clock()
	m := Model{
		tracker:  t,
		stats:    opts,
		clock:    clock,
		saveErrs: saveErrs,
		state:    StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		habits:   habitlist.New(t.Habits(), now, 0, 0),
		coughs:   coughlog.New(0, 0),
	}
	m.coughs.SetLogs(t.CoughLogs(), now)
	return m
}

func (m Model) State() SessionState {
	return m.state
}

// Status is the message shown under the tabs, if any.
func (m Model) Status() string {
	return m.status
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	case StateCoughs:
		keys = append(keys, m.keys.Add)
	case StateDashboard:
		keys = append(keys, m.keys.Refresh)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Delete}
	case StateCoughs:
		actions = []key.Binding{m.keys.Add}
	case StateDashboard:
		actions = []key.Binding{m.keys.Refresh}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads both lists from the tracker and surfaces any pending
// save failure.
func (m *Model) refresh() {
	now := m.clock()
	m.habits.SetHabits(m.tracker.Habits(), now)
	m.coughs.SetLogs(m.tracker.CoughLogs(), now)
	if err := m.saveErrs.Take(); err != nil {
		m.status = "⚠ " + err.Error()
	}
}
