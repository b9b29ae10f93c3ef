package tracker

import (
	"maps"
	"strings"

	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// AddHabit creates a habit with a fresh id and no entries.
func (t *Tracker) AddHabit(draft models.HabitDraft) (models.Habit, error) {
	name, err := validation.HabitName(draft.Name)
	if err != nil {
		return models.Habit{}, err
	}
	category, err := validation.Category(draft.Category)
	if err != nil {
		return models.Habit{}, err
	}
	frequency, err := validation.Frequency(draft.Frequency)
	if err != nil {
		return models.Habit{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	created := draft.DateCreated
	if created.IsZero() {
		created = t.now()
	}

	h := models.Habit{
		ID:          t.newID(),
		Name:        name,
		Description: strings.TrimSpace(draft.Description),
		Category:    category,
		Frequency:   frequency,
		DateCreated: created,
		Entries:     make(map[string]models.HabitEntry),
	}
	t.habits = append(t.habits, h)

	logger.Debug("Habit added", "id", h.ID, "name", h.Name)
	t.persistLocked("add habit")
	return h.Clone(), nil
}

// UpdateHabit merges patch into the habit identified by id. Entries are
// preserved unless the patch carries a replacement map.
func (t *Tracker) UpdateHabit(id string, patch models.HabitPatch) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.habitIndexLocked(id)
	if i < 0 {
		return models.Habit{}, errors.NewNotFound("habit", id)
	}

	updated := t.habits[i].Clone()
	if patch.Name != nil {
		name, err := validation.HabitName(*patch.Name)
		if err != nil {
			return models.Habit{}, err
		}
		updated.Name = name
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		c, err := validation.Category(*patch.Category)
		if err != nil {
			return models.Habit{}, err
		}
		updated.Category = c
	}
	if patch.Frequency != nil {
		f, err := validation.Frequency(*patch.Frequency)
		if err != nil {
			return models.Habit{}, err
		}
		updated.Frequency = f
	}
	if patch.Entries != nil {
		if err := validation.Entries(patch.Entries); err != nil {
			return models.Habit{}, err
		}
		updated.Entries = maps.Clone(patch.Entries)
	}

	if patch.IsEmpty() {
		return updated, nil
	}

	t.habits[i] = updated
	logger.Debug("Habit updated", "id", id)
	t.persistLocked("update habit")
	return updated.Clone(), nil
}

// DeleteHabit removes the habit and all of its entries. Deleting an id
// twice fails with a NotFoundError.
func (t *Tracker) DeleteHabit(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.habitIndexLocked(id)
	if i < 0 {
		return errors.NewNotFound("habit", id)
	}
	t.habits = append(t.habits[:i:i], t.habits[i+1:]...)

	logger.Debug("Habit deleted", "id", id)
	t.persistLocked("delete habit")
	return nil
}

// LogHabitEntry upserts the entry for dateKey. An existing entry is
// overwritten wholesale; entries on other days are untouched.
func (t *Tracker) LogHabitEntry(habitID, dateKey string, completed bool, notes string) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.habitIndexLocked(habitID)
	if i < 0 {
		return models.Habit{}, errors.NewNotFound("habit", habitID)
	}
	if err := validation.DateKey(dateKey); err != nil {
		return models.Habit{}, err
	}

	h := &t.habits[i]
	if h.Entries == nil {
		h.Entries = make(map[string]models.HabitEntry)
	}
	h.Entries[dateKey] = models.HabitEntry{Completed: completed, Notes: notes}

	logger.Debug("Habit entry logged", "id", habitID, "day", dateKey, "completed", completed)
	t.persistLocked("log habit entry")
	return h.Clone(), nil
}

// Habit returns the habit with the given id.
func (t *Tracker) Habit(id string) (models.Habit, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.habitIndexLocked(id)
	if i < 0 {
		return models.Habit{}, errors.NewNotFound("habit", id)
	}
	return t.habits[i].Clone(), nil
}

// HabitByName finds the first habit whose name matches, ignoring case and
// surrounding whitespace.
func (t *Tracker) HabitByName(name string) (models.Habit, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	want := strings.TrimSpace(name)
	for _, h := range t.habits {
		if strings.EqualFold(h.Name, want) {
			return h.Clone(), nil
		}
	}
	return models.Habit{}, errors.NewNotFound("habit", want)
}

func (t *Tracker) habitIndexLocked(id string) int {
	for i := range t.habits {
		if t.habits[i].ID == id {
			return i
		}
	}
	return -1
}
