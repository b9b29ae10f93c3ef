package forms

import (
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
)

func TestSplitTriggers(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"dust", []string{"dust"}},
		{"dust, cold air ,, dust", []string{"dust", "cold air", "dust"}},
	}
	for _, tt := range tests {
		got := SplitTriggers(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitTriggers(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitTriggers(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestCoughFieldsDraft(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	d, err := (&CoughFields{Severity: " 4 ", When: "", Triggers: "dust, smoke"}).Draft(now)
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if d.Severity != 4 || !d.Timestamp.IsZero() || len(d.PossibleTriggers) != 2 {
		t.Errorf("unexpected draft: %+v", d)
	}

	d, err = (&CoughFields{Severity: "2", When: "07:30"}).Draft(now)
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if want := time.Date(2024, 1, 10, 7, 30, 0, 0, time.UTC); !d.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", d.Timestamp, want)
	}

	if _, err := (&CoughFields{Severity: "high"}).Draft(now); err == nil {
		t.Error("expected error for non-numeric severity")
	}
	if _, err := (&CoughFields{Severity: "3", When: "yesterday"}).Draft(now); err == nil {
		t.Error("expected error for unparseable time")
	}
}

func TestNewHabitFormDefaults(t *testing.T) {
	fm := &HabitFields{Name: "Walk"}
	if NewHabitForm(fm) == nil {
		t.Fatal("expected a form")
	}
	if fm.Category != models.DefaultCategory || fm.Frequency != models.DefaultFrequency {
		t.Errorf("defaults not preselected: %+v", fm)
	}

	d := fm.Draft()
	if d.Name != "Walk" || d.Category != models.DefaultCategory {
		t.Errorf("unexpected draft: %+v", d)
	}
}
