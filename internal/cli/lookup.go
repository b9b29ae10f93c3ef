package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
)

// minIDPrefix is the shortest id prefix accepted on the command line.
const minIDPrefix = 4

// ResolveHabit finds a habit by exact id, then by name.
func ResolveHabit(t *tracker.Tracker, ref string) (models.Habit, error) {
	if h, err := t.Habit(ref); err == nil {
		return h, nil
	}
	return t.HabitByName(ref)
}

// ResolveCoughLog finds a cough log by id or unique id prefix.
func ResolveCoughLog(t *tracker.Tracker, ref string) (models.CoughLog, error) {
	ref = strings.TrimSpace(ref)
	if l, err := t.CoughLog(ref); err == nil {
		return l, nil
	}
	if len(ref) < minIDPrefix {
		return models.CoughLog{}, errors.NewNotFound("cough log", ref)
	}

	var matches []models.CoughLog
	for _, l := range t.CoughLogs() {
		if strings.HasPrefix(l.ID, ref) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return models.CoughLog{}, errors.NewNotFound("cough log", ref)
	case 1:
		return matches[0], nil
	default:
		return models.CoughLog{}, fmt.Errorf("id prefix %q matches %d cough logs", ref, len(matches))
	}
}

// ShortID shortens an id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
