// Package tracker owns the habit and cough log collections. It is the only
// mutation surface: every successful change is applied in memory and then
// handed to the storage provider.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for defaults.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithIDGenerator overrides identifier assignment.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) {
		t.newID = newID
	}
}

// WithSaveWarning registers a hook called whenever persisting a mutation
// fails. The mutation itself is kept.
func WithSaveWarning(fn func(error)) Option {
	return func(t *Tracker) {
		t.onSaveError = fn
	}
}

type Tracker struct {
	mu       sync.RWMutex
	provider storage.Provider
	habits   []models.Habit
	logs     []models.CoughLog

	now         func() time.Time
	newID       func() string
	onSaveError func(error)
}

// Open loads the current collections from provider. The provider must
// already be initialized.
func Open(provider storage.Provider, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		provider: provider,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := provider.Load(); err != nil {
		return nil, err
	}
	snap, err := provider.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}

	for i := range snap.Habits {
		if snap.Habits[i].Entries == nil {
			snap.Habits[i].Entries = make(map[string]models.HabitEntry)
		}
	}
	t.habits = snap.Habits
	t.logs = snap.CoughLogs

	logger.Debug("Tracker opened", "storage", provider.GetConfigPath(),
		"habits", len(t.habits), "cough_logs", len(t.logs))
	return t, nil
}

// Close releases the storage provider.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.provider.Close()
}

// Provider exposes the backing storage, e.g. for backups.
func (t *Tracker) Provider() storage.Provider {
	return t.provider
}

// Habits returns a copy of every habit in insertion order.
func (t *Tracker) Habits() []models.Habit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked().Habits
}

// CoughLogs returns a copy of every cough log in insertion order.
func (t *Tracker) CoughLogs() []models.CoughLog {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked().CoughLogs
}

// Snapshot returns both collections as they were at one instant.
func (t *Tracker) Snapshot() models.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() models.Snapshot {
	return models.Snapshot{Habits: t.habits, CoughLogs: t.logs}.Clone()
}

// persistLocked saves the current collections. Failures are reported
// through the warning hook rather than returned.
func (t *Tracker) persistLocked(op string) {
	if err := t.provider.Save(t.snapshotLocked()); err != nil {
		err = fmt.Errorf("failed to save after %s: %w", op, err)
		logger.Warn("Save failed, change kept in memory only", "op", op, "error", err)
		if t.onSaveError != nil {
			t.onSaveError(err)
		}
		return
	}
	logger.Debug("Saved collections", "op", op)
}
