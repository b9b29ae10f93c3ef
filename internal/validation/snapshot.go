package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitlog/internal/models"
)

// ConflictType represents the kind of problem found in stored data
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictMissingName        ConflictType = "missing_name"
	ConflictInvalidEnum        ConflictType = "invalid_enum"
	ConflictInvalidDateKey     ConflictType = "invalid_date_key"
	ConflictSeverityOutOfRange ConflictType = "severity_out_of_range"
	ConflictInvalidTimestamp   ConflictType = "invalid_timestamp"
)

// Conflict is a single problem found in a snapshot
type Conflict struct {
	Type        ConflictType
	Description string
	ID          string
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks stored collections for data that would have been
// rejected at the mutation boundary (hand-edited files, old schemas).
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot checks every habit and cough log in s.
func (v *Validator) ValidateSnapshot(s models.Snapshot) Result {
	var result Result
	add := func(t ConflictType, id, format string, args ...any) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			ID:          id,
			Description: fmt.Sprintf(format, args...),
		})
	}

	ids := make(map[string]bool)
	names := make(map[string]string)
	for _, h := range s.Habits {
		if ids[h.ID] {
			add(ConflictDuplicateID, h.ID, "duplicate habit id %s", h.ID)
		}
		ids[h.ID] = true

		if _, err := HabitName(h.Name); err != nil {
			add(ConflictMissingName, h.ID, "habit %s has no name", h.ID)
		} else {
			key := strings.ToLower(strings.TrimSpace(h.Name))
			if other, ok := names[key]; ok {
				add(ConflictDuplicateHabitName, h.ID, "habits %s and %s share the name %q", other, h.ID, h.Name)
			}
			names[key] = h.ID
		}

		if _, err := Category(h.Category); err != nil {
			add(ConflictInvalidEnum, h.ID, "habit %q: %v", h.Name, err)
		}
		if _, err := Frequency(h.Frequency); err != nil {
			add(ConflictInvalidEnum, h.ID, "habit %q: %v", h.Name, err)
		}

		keys := make([]string, 0, len(h.Entries))
		for k := range h.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := DateKey(k); err != nil {
				add(ConflictInvalidDateKey, h.ID, "habit %q has an entry with key %q", h.Name, k)
			}
		}
	}

	logIDs := make(map[string]bool)
	for _, l := range s.CoughLogs {
		if logIDs[l.ID] {
			add(ConflictDuplicateID, l.ID, "duplicate cough log id %s", l.ID)
		}
		logIDs[l.ID] = true

		if err := Severity(l.Severity); err != nil {
			add(ConflictSeverityOutOfRange, l.ID, "cough log %s: %v", l.ID, err)
		}
		if err := Timestamp(l.Timestamp); err != nil {
			add(ConflictInvalidTimestamp, l.ID, "cough log %s: %v", l.ID, err)
		}
	}

	return result
}
