package models

import (
	"maps"
	"time"
)

// Category groups habits for display
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryWellness     Category = "wellness"
	CategoryLifestyle    Category = "lifestyle"
	CategoryOther        Category = "other"
)

// Categories lists every accepted category in display order
var Categories = []Category{
	CategoryHealth,
	CategoryProductivity,
	CategoryWellness,
	CategoryLifestyle,
	CategoryOther,
}

// DefaultCategory is assigned when a draft does not name one
const DefaultCategory = CategoryHealth

// Frequency describes how often a habit is expected to be performed
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyWeekly   Frequency = "weekly"
)

// Frequencies lists every accepted frequency in display order
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekdays,
	FrequencyWeekends,
	FrequencyWeekly,
}

// DefaultFrequency is assigned when a draft does not name one
const DefaultFrequency = FrequencyDaily

// Habit represents a recurring practice tracked per calendar day
type Habit struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Category    Category              `json:"category"`
	Frequency   Frequency             `json:"frequency"`
	DateCreated time.Time             `json:"date_created"`
	Entries     map[string]HabitEntry `json:"entries"` // keyed by YYYY-MM-DD
}

// HabitEntry is the completion record for one habit on one day
type HabitEntry struct {
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

// Entry returns the entry stored for day, if any.
func (h Habit) Entry(day string) (HabitEntry, bool) {
	e, ok := h.Entries[day]
	return e, ok
}

// CompletedOn reports whether the habit has a completed entry for day.
// A missing entry counts as not completed.
func (h Habit) CompletedOn(day string) bool {
	e, ok := h.Entries[day]
	return ok && e.Completed
}

// Clone returns a copy of the habit that shares no entry storage with h.
func (h Habit) Clone() Habit {
	c := h
	c.Entries = make(map[string]HabitEntry, len(h.Entries))
	maps.Copy(c.Entries, h.Entries)
	return c
}

// HabitDraft carries the user supplied fields for a new habit
type HabitDraft struct {
	Name        string
	Description string
	Category    Category
	Frequency   Frequency
	DateCreated time.Time // zero means "now"
}

// HabitPatch enumerates the fields UpdateHabit may overwrite.
// Nil fields are left untouched; Entries is only replaced when non-nil.
type HabitPatch struct {
	Name        *string
	Description *string
	Category    *Category
	Frequency   *Frequency
	Entries     map[string]HabitEntry
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Frequency == nil && p.Entries == nil
}
