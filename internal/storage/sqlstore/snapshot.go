// Package sqlstore reads and writes a full snapshot against the shared
// habitlog schema. It is dialect neutral: queries are written with "?"
// and rebound for the connection's driver.
package sqlstore

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

type habitRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Category    string `db:"category"`
	Frequency   string `db:"frequency"`
	DateCreated string `db:"date_created"`
}

type entryRow struct {
	HabitID   string `db:"habit_id"`
	Day       string `db:"day"`
	Completed bool   `db:"completed"`
	Notes     string `db:"notes"`
}

type coughRow struct {
	ID         string `db:"id"`
	OccurredAt string `db:"occurred_at"`
	Severity   int    `db:"severity"`
}

type triggerRow struct {
	LogID string `db:"log_id"`
	Label string `db:"label"`
}

// ReadSnapshot loads both collections, habits and cough logs in insertion order.
func ReadSnapshot(db sqlx.Queryer) (models.Snapshot, error) {
	var habits []habitRow
	if err := sqlx.Select(db, &habits,
		"SELECT id, name, description, category, frequency, date_created FROM habits ORDER BY seq"); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read habits: %w", err)
	}

	var entries []entryRow
	if err := sqlx.Select(db, &entries,
		"SELECT habit_id, day, completed, notes FROM habit_entries"); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read habit entries: %w", err)
	}

	var logs []coughRow
	if err := sqlx.Select(db, &logs,
		"SELECT id, occurred_at, severity FROM cough_logs ORDER BY seq"); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read cough logs: %w", err)
	}

	var triggers []triggerRow
	if err := sqlx.Select(db, &triggers,
		"SELECT log_id, label FROM cough_log_triggers ORDER BY log_id, position"); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read cough log triggers: %w", err)
	}

	snap := models.Snapshot{
		Habits:    make([]models.Habit, 0, len(habits)),
		CoughLogs: make([]models.CoughLog, 0, len(logs)),
	}

	byHabit := make(map[string]map[string]models.HabitEntry, len(habits))
	for _, e := range entries {
		if byHabit[e.HabitID] == nil {
			byHabit[e.HabitID] = make(map[string]models.HabitEntry)
		}
		byHabit[e.HabitID][e.Day] = models.HabitEntry{Completed: e.Completed, Notes: e.Notes}
	}

	for _, r := range habits {
		created, err := parseTime(r.DateCreated)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("habit %s: %w", r.ID,
				errors.NewValidation("date_created", r.DateCreated, "not a valid timestamp"))
		}
		h := models.Habit{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Category:    models.Category(r.Category),
			Frequency:   models.Frequency(r.Frequency),
			DateCreated: created,
			Entries:     byHabit[r.ID],
		}
		if h.Entries == nil {
			h.Entries = make(map[string]models.HabitEntry)
		}
		snap.Habits = append(snap.Habits, h)
	}

	byLog := make(map[string][]string, len(logs))
	for _, t := range triggers {
		byLog[t.LogID] = append(byLog[t.LogID], t.Label)
	}

	for _, r := range logs {
		ts, err := parseTime(r.OccurredAt)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("cough log %s: %w", r.ID,
				errors.NewValidation("timestamp", r.OccurredAt, "not a valid timestamp"))
		}
		snap.CoughLogs = append(snap.CoughLogs, models.CoughLog{
			ID:               r.ID,
			Timestamp:        ts,
			Severity:         r.Severity,
			PossibleTriggers: byLog[r.ID],
		})
	}

	return snap, nil
}

// WriteSnapshot replaces the stored collections with s inside tx.
func WriteSnapshot(tx *sqlx.Tx, s models.Snapshot) error {
	for _, table := range []string{"habit_entries", "habits", "cough_log_triggers", "cough_logs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertHabit := tx.Rebind(`INSERT INTO habits (id, name, description, category, frequency, date_created, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	insertEntry := tx.Rebind(`INSERT INTO habit_entries (habit_id, day, completed, notes) VALUES (?, ?, ?, ?)`)
	insertLog := tx.Rebind(`INSERT INTO cough_logs (id, occurred_at, severity, seq) VALUES (?, ?, ?, ?)`)
	insertTrigger := tx.Rebind(`INSERT INTO cough_log_triggers (log_id, position, label) VALUES (?, ?, ?)`)

	for i, h := range s.Habits {
		if _, err := tx.Exec(insertHabit, h.ID, h.Name, h.Description, string(h.Category), string(h.Frequency),
			formatTime(h.DateCreated), i); err != nil {
			return fmt.Errorf("failed to write habit %s: %w", h.ID, err)
		}
		for day, e := range h.Entries {
			if _, err := tx.Exec(insertEntry, h.ID, day, e.Completed, e.Notes); err != nil {
				return fmt.Errorf("failed to write entry %s for habit %s: %w", day, h.ID, err)
			}
		}
	}

	for i, l := range s.CoughLogs {
		if _, err := tx.Exec(insertLog, l.ID, formatTime(l.Timestamp), l.Severity, i); err != nil {
			return fmt.Errorf("failed to write cough log %s: %w", l.ID, err)
		}
		for pos, label := range l.PossibleTriggers {
			if _, err := tx.Exec(insertTrigger, l.ID, pos, label); err != nil {
				return fmt.Errorf("failed to write trigger for cough log %s: %w", l.ID, err)
			}
		}
	}

	return nil
}

// Save writes s in a single transaction.
func Save(db *sqlx.DB, s models.Snapshot) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := WriteSnapshot(tx, s); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(constants.TimestampFormat, s)
}
