package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
)

func setupTestJSONStore(t *testing.T) (*JSONStore, string) {
	path := filepath.Join(t.TempDir(), "habitlog.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	return store, path
}

func sampleSnapshot() models.Snapshot {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Habits: []models.Habit{
			{
				ID: "h1", Name: "Walk", Category: models.CategoryHealth, Frequency: models.FrequencyDaily,
				DateCreated: created,
				Entries: map[string]models.HabitEntry{
					"2024-01-09": {Completed: true, Notes: "park"},
					"2024-01-10": {Completed: false},
				},
			},
			{
				ID: "h2", Name: "Read", Description: "20 pages", Category: models.CategoryWellness,
				Frequency: models.FrequencyWeekdays, DateCreated: created, Entries: map[string]models.HabitEntry{},
			},
		},
		CoughLogs: []models.CoughLog{
			{ID: "c2", Timestamp: time.Date(2024, 1, 9, 22, 15, 0, 0, time.UTC), Severity: 7, PossibleTriggers: []string{"dust", "dust"}},
			{ID: "c1", Timestamp: time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC), Severity: 2},
		},
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store, path := setupTestJSONStore(t)

	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	snap, err := reloaded.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(snap.Habits) != 2 || snap.Habits[0].ID != "h1" || snap.Habits[1].ID != "h2" {
		t.Fatalf("unexpected habits: %+v", snap.Habits)
	}
	if e := snap.Habits[0].Entries["2024-01-09"]; !e.Completed || e.Notes != "park" {
		t.Errorf("entry not preserved: %+v", e)
	}
	if len(snap.CoughLogs) != 2 || snap.CoughLogs[0].ID != "c2" {
		t.Fatalf("cough log order not preserved: %+v", snap.CoughLogs)
	}
	if got := snap.CoughLogs[0].PossibleTriggers; len(got) != 2 || got[0] != "dust" || got[1] != "dust" {
		t.Errorf("triggers not preserved: %v", got)
	}
	if !snap.CoughLogs[1].Timestamp.Equal(time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp not preserved: %v", snap.CoughLogs[1].Timestamp)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestJSONStoreSnapshotIsACopy(t *testing.T) {
	store, _ := setupTestJSONStore(t)
	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	snap, _ := store.Snapshot()
	snap.Habits[0].Entries["2024-01-09"] = models.HabitEntry{}
	snap.CoughLogs[0].PossibleTriggers[0] = "changed"

	again, _ := store.Snapshot()
	if !again.Habits[0].Entries["2024-01-09"].Completed {
		t.Error("mutating a snapshot leaked into the store")
	}
	if again.CoughLogs[0].PossibleTriggers[0] != "dust" {
		t.Error("mutating snapshot triggers leaked into the store")
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	_, path := setupTestJSONStore(t)
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("expected error initializing an existing store")
	}
}

func TestJSONStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()

	missing := NewJSONStore(filepath.Join(dir, "missing.json"))
	if err := missing.Load(); err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Load() error = %v, want not initialized", err)
	}

	if _, err := missing.Snapshot(); err == nil {
		t.Error("expected Snapshot to fail before Load")
	}
	if err := missing.Save(models.Snapshot{}); err == nil {
		t.Error("expected Save to fail before Load")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(corrupt).Load(); err == nil {
		t.Error("expected parse error")
	}

	future := filepath.Join(dir, "future.json")
	if err := os.WriteFile(future, []byte(`{"version": 99}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(future).Load(); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("Load() error = %v, want newer version error", err)
	}
}

func TestJSONStoreLoadFillsMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.json")
	doc := `{"version": 1, "habits": [{"id": "h1", "name": "Walk", "category": "health", "frequency": "daily"}]}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Habits[0].Entries == nil {
		t.Error("expected entries map to be initialized")
	}
	if snap.CoughLogs == nil {
		t.Error("expected cough logs to be initialized")
	}
}
