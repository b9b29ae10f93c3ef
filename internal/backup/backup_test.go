package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

func sampleSnapshot(names ...string) models.Snapshot {
	var s models.Snapshot
	for i, n := range names {
		s.Habits = append(s.Habits, models.Habit{
			ID: n, Name: n, Category: models.CategoryHealth, Frequency: models.FrequencyDaily,
			DateCreated: time.Date(2024, 1, 1+i, 8, 0, 0, 0, time.UTC),
			Entries:     map[string]models.HabitEntry{"2024-01-10": {Completed: true}},
		})
	}
	return s
}

func setupTestDB(t *testing.T, names ...string) string {
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	defer store.Close()

	if err := store.Save(sampleSnapshot(names...)); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}
	return dbPath
}

func setupTestJSON(t *testing.T, names ...string) string {
	path := filepath.Join(t.TempDir(), "habitlog.json")

	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	if err := store.Save(sampleSnapshot(names...)); err != nil {
		t.Fatalf("failed to seed json store: %v", err)
	}
	return path
}

// steppingClock advances by one minute on every call so backups get
// distinct names without sleeping.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func habitNames(t *testing.T, snap models.Snapshot) string {
	t.Helper()
	var names []string
	for _, h := range snap.Habits {
		names = append(names, h.Name)
	}
	return strings.Join(names, ",")
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t, "walk")

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), "habitlog-") || !strings.HasSuffix(backupPath, ".db") {
		t.Errorf("unexpected backup name: %s", backupPath)
	}

	store := sqlite.NewStore(backupPath)
	if err := store.Load(); err != nil {
		t.Fatalf("backup is not a usable database: %v", err)
	}
	defer store.Close()
	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := habitNames(t, snap); got != "walk" {
		t.Errorf("backup contents = %q, want walk", got)
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing data file")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t, "walk")

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	// oldest three were pruned
	oldest := backups[len(backups)-1].Timestamp
	want := time.Date(2024, 1, 1, 9, 3, 0, 0, time.Local)
	if !oldest.Equal(want) {
		t.Errorf("oldest remaining backup = %v, want %v", oldest, want)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t, "walk")
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2024, 3, 1, 7, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "habitlog-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v before %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if backups[0].Size == 0 {
		t.Error("expected non-zero backup size")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t, "walk")
	mgr := NewManager(dbPath)
	frozen := time.Date(2024, 5, 5, 10, 30, 15, 0, time.Local)
	mgr.now = func() time.Time { return frozen }

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Errorf("expected all 4 backups to be listed, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t, "walk")
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(sampleSnapshot("walk", "read")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if safety == "" {
		t.Error("expected a pre-restore backup of the current database")
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	defer restored.Close()
	snap, _ := restored.Snapshot()
	if got := habitNames(t, snap); got != "walk" {
		t.Errorf("restored contents = %q, want walk", got)
	}

	pre := sqlite.NewStore(safety)
	if err := pre.Load(); err != nil {
		t.Fatalf("Load of pre-restore backup failed: %v", err)
	}
	defer pre.Close()
	snap, _ = pre.Snapshot()
	if got := habitNames(t, snap); got != "walk,read" {
		t.Errorf("pre-restore backup contents = %q, want walk,read", got)
	}
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t, "walk")
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected restore of invalid file to fail")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected restore of missing file to fail")
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	path := setupTestJSON(t, "walk")
	mgr := NewManager(path)
	if mgr.Kind() != KindJSON {
		t.Fatalf("expected JSON manager for %s", path)
	}
	mgr.now = steppingClock(time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("unexpected backup name %s", backupPath)
	}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(sampleSnapshot("walk", "read")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	reloaded := storage.NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	snap, _ := reloaded.Snapshot()
	if got := habitNames(t, snap); got != "walk" {
		t.Errorf("restored contents = %q, want walk", got)
	}

	broken := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(broken); err == nil {
		t.Error("expected restore of malformed JSON to fail")
	}
}

func TestParseBackupTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"20240105-0930", true, time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local)},
		{"20240105-093015", true, time.Date(2024, 1, 5, 9, 30, 15, 0, time.Local)},
		{"20240105-093015-2", true, time.Date(2024, 1, 5, 9, 30, 15, 0, time.Local)},
		{"20240105", false, time.Time{}},
		{"garbage", false, time.Time{}},
	}
	for _, tt := range tests {
		got, ok := parseBackupTimestamp(tt.in)
		if ok != tt.ok || (ok && !got.Equal(tt.want)) {
			t.Errorf("parseBackupTimestamp(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
