package tui

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/coughlog"
	"github.com/julianstephens/habitlog/internal/tui/components/habitlist"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (Model, *tracker.Tracker) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitlog.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	clock := func() time.Time { return testNow }
	tr, err := tracker.Open(store, tracker.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to open tracker: %v", err)
	}
	t.Cleanup(func() { tr.Close() })

	if _, err := tr.AddHabit(models.HabitDraft{Name: "Walk"}); err != nil {
		t.Fatal(err)
	}

	m := NewModel(tr, stats.DefaultOptions(), clock, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, tr
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

// press delivers a key and feeds back toggle and delete requests the way
// the bubbletea runtime would.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case habitlist.ToggleHabitMsg, habitlist.DeleteHabitMsg:
		return send(t, m, msg)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupTestModel(t)
	if m.State() != StateDashboard {
		t.Fatalf("initial state = %v", m.State())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State() != StateHabits {
		t.Errorf("after tab state = %v, want habits", m.State())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State() != StateDashboard {
		t.Errorf("tab should wrap to dashboard, got %v", m.State())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.State() != StateCoughs {
		t.Errorf("shift+tab should wrap to coughs, got %v", m.State())
	}
}

func TestToggleHabitMarksToday(t *testing.T) {
	m, tr := setupTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = press(t, m, runes("m"))
	h := tr.Habits()[0]
	if !h.CompletedOn("2024-03-15") {
		t.Fatalf("expected habit completed today, entries = %+v", h.Entries)
	}

	m = press(t, m, runes("m"))
	h = tr.Habits()[0]
	if h.CompletedOn("2024-03-15") {
		t.Error("second toggle should mark the habit not done")
	}
	if _, ok := h.Entry("2024-03-15"); !ok {
		t.Error("untoggling should keep an explicit entry")
	}
}

func TestToggleKeepsNotes(t *testing.T) {
	m, tr := setupTestModel(t)
	id := tr.Habits()[0].ID
	if _, err := tr.LogHabitEntry(id, "2024-03-15", false, "rained"); err != nil {
		t.Fatal(err)
	}

	send(t, m, habitlist.ToggleHabitMsg{ID: id, Done: true})
	e, _ := tr.Habits()[0].Entry("2024-03-15")
	if !e.Completed || e.Notes != "rained" {
		t.Errorf("entry = %+v", e)
	}
}

func TestDeleteHabitConfirmation(t *testing.T) {
	m, tr := setupTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = press(t, m, runes("d"))
	if m.State() != StateConfirmDelete {
		t.Fatalf("state = %v, want confirm delete", m.State())
	}
	if !strings.Contains(m.View(), `Delete habit "Walk"`) {
		t.Error("confirmation prompt missing habit name")
	}

	m = press(t, m, runes("n"))
	if m.State() != StateHabits || len(tr.Habits()) != 1 {
		t.Fatalf("cancel should keep the habit, state = %v", m.State())
	}

	m = press(t, m, runes("d"))
	m = press(t, m, runes("y"))
	if m.State() != StateHabits {
		t.Errorf("state = %v, want habits", m.State())
	}
	if len(tr.Habits()) != 0 {
		t.Error("habit not deleted")
	}
	if m.Status() != `Deleted habit "Walk"` {
		t.Errorf("status = %q", m.Status())
	}
}

func TestAddFormsOpenAndCancel(t *testing.T) {
	m, _ := setupTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(runes("a"))
	if cmd == nil {
		t.Fatal("expected a command from the habit list")
	}
	if _, ok := cmd().(habitlist.AddHabitMsg); !ok {
		t.Fatal("expected AddHabitMsg")
	}

	m = send(t, m, habitlist.AddHabitMsg{})
	if m.State() != StateAddHabit {
		t.Fatalf("state = %v, want add habit", m.State())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateHabits {
		t.Errorf("esc should return to habits, got %v", m.State())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, coughlog.AddCoughMsg{})
	if m.State() != StateAddCough {
		t.Fatalf("state = %v, want add cough", m.State())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateCoughs {
		t.Errorf("esc should return to coughs, got %v", m.State())
	}
}

func TestDashboardView(t *testing.T) {
	m, tr := setupTestModel(t)
	if _, err := tr.AddCoughLog(models.CoughLogDraft{
		Timestamp:        testNow.Add(-time.Hour),
		Severity:         4,
		PossibleTriggers: []string{"dust"},
	}); err != nil {
		t.Fatal(err)
	}

	view := m.View()
	for _, want := range []string{"Dashboard", "dust"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestSaveErrorsSurfaceInStatus(t *testing.T) {
	m, _ := setupTestModel(t)
	m.saveErrs.Record(stderrors.New("disk full"))

	m = press(t, m, runes("r"))
	if !strings.Contains(m.Status(), "disk full") {
		t.Errorf("status = %q", m.Status())
	}
	if m.saveErrs.Take() != nil {
		t.Error("Take should clear the recorded error")
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
