package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

func TestDateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"2024-01-10", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-1-10", true},
		{"2024-01-10T00:00:00Z", true},
		{" 2024-01-10", true},
		{"10/01/2024", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := DateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
		})
	}
}

func TestHabitName(t *testing.T) {
	name, err := HabitName("  Drink water ")
	if err != nil {
		t.Fatalf("HabitName() unexpected error: %v", err)
	}
	if name != "Drink water" {
		t.Errorf("HabitName() = %q, want trimmed name", name)
	}

	for _, bad := range []string{"", "   ", "\t"} {
		if _, err := HabitName(bad); !errors.IsValidation(err) {
			t.Errorf("HabitName(%q) error = %v, want validation error", bad, err)
		}
	}
}

func TestCategoryAndFrequencyDefaults(t *testing.T) {
	c, err := Category("")
	if err != nil || c != models.CategoryHealth {
		t.Errorf("Category(\"\") = %q, %v; want health", c, err)
	}
	c, err = Category("Wellness")
	if err != nil || c != models.CategoryWellness {
		t.Errorf("Category(Wellness) = %q, %v", c, err)
	}
	if _, err := Category("hobby"); !errors.IsValidation(err) {
		t.Errorf("Category(hobby) error = %v, want validation error", err)
	}

	f, err := Frequency("")
	if err != nil || f != models.FrequencyDaily {
		t.Errorf("Frequency(\"\") = %q, %v; want daily", f, err)
	}
	if _, err := Frequency("monthly"); !errors.IsValidation(err) {
		t.Errorf("Frequency(monthly) error = %v, want validation error", err)
	}
}

func TestSeverity(t *testing.T) {
	for _, s := range []int{1, 5, 10} {
		if err := Severity(s); err != nil {
			t.Errorf("Severity(%d) unexpected error: %v", s, err)
		}
	}
	for _, s := range []int{0, -1, 11} {
		if err := Severity(s); !errors.IsValidation(err) {
			t.Errorf("Severity(%d) error = %v, want validation error", s, err)
		}
	}
}

func TestTimestamp(t *testing.T) {
	if err := Timestamp(time.Time{}); !errors.IsValidation(err) {
		t.Errorf("Timestamp(zero) error = %v, want validation error", err)
	}
	if err := Timestamp(time.Now()); err != nil {
		t.Errorf("Timestamp(now) unexpected error: %v", err)
	}
}

func TestTriggers(t *testing.T) {
	got := Triggers([]string{" dust", "", "dust ", "  ", "pollen"})
	want := []string{"dust", "dust", "pollen"}
	if len(got) != len(want) {
		t.Fatalf("Triggers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Triggers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if out := Triggers(nil); out == nil || len(out) != 0 {
		t.Errorf("Triggers(nil) = %#v, want empty non-nil slice", out)
	}
}

func TestValidateSnapshot(t *testing.T) {
	snap := models.Snapshot{
		Habits: []models.Habit{
			{ID: "1", Name: "Walk", Category: models.CategoryHealth, Frequency: models.FrequencyDaily,
				Entries: map[string]models.HabitEntry{"2024-01-10": {Completed: true}}},
			{ID: "2", Name: "walk", Category: models.CategoryHealth, Frequency: models.FrequencyDaily},
			{ID: "3", Name: "", Category: "bogus", Frequency: models.FrequencyDaily,
				Entries: map[string]models.HabitEntry{"Jan 10": {}}},
		},
		CoughLogs: []models.CoughLog{
			{ID: "a", Timestamp: time.Now(), Severity: 4},
			{ID: "b", Severity: 12},
		},
	}

	result := New().ValidateSnapshot(snap)
	if !result.HasConflicts() {
		t.Fatal("expected conflicts")
	}

	seen := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		seen[c.Type]++
	}
	for _, want := range []ConflictType{
		ConflictDuplicateHabitName,
		ConflictMissingName,
		ConflictInvalidEnum,
		ConflictInvalidDateKey,
		ConflictSeverityOutOfRange,
		ConflictInvalidTimestamp,
	} {
		if seen[want] == 0 {
			t.Errorf("expected a %s conflict, got %v", want, result.Conflicts)
		}
	}

	report := result.FormatReport()
	if !strings.HasPrefix(report, "Problems detected:") {
		t.Errorf("unexpected report: %q", report)
	}
}

func TestValidateSnapshotClean(t *testing.T) {
	result := New().ValidateSnapshot(models.Snapshot{})
	if result.HasConflicts() {
		t.Errorf("empty snapshot reported conflicts: %v", result.Conflicts)
	}
	if result.FormatReport() != "No problems detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}
