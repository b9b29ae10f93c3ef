package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

// DateKey checks that key is a canonical YYYY-MM-DD calendar date.
// Keys are compared exactly, so non-canonical spellings are rejected
// rather than normalized.
func DateKey(key string) error {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil || t.Format(constants.DateFormat) != key {
		return errors.NewValidation("date", key, "expected a calendar date in YYYY-MM-DD format")
	}
	return nil
}

// HabitName trims name and rejects empty values.
func HabitName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewValidation("name", nil, "habit name is required")
	}
	return trimmed, nil
}

// Category resolves c, substituting the default for an empty value.
func Category(c models.Category) (models.Category, error) {
	if c == "" {
		return models.DefaultCategory, nil
	}
	c = models.Category(strings.ToLower(strings.TrimSpace(string(c))))
	if !slices.Contains(models.Categories, c) {
		return "", errors.NewValidation("category", c, fmt.Sprintf("must be one of %s", joinEnum(models.Categories)))
	}
	return c, nil
}

// Frequency resolves f, substituting the default for an empty value.
func Frequency(f models.Frequency) (models.Frequency, error) {
	if f == "" {
		return models.DefaultFrequency, nil
	}
	f = models.Frequency(strings.ToLower(strings.TrimSpace(string(f))))
	if !slices.Contains(models.Frequencies, f) {
		return "", errors.NewValidation("frequency", f, fmt.Sprintf("must be one of %s", joinEnum(models.Frequencies)))
	}
	return f, nil
}

// Severity checks the cough log severity bound.
func Severity(s int) error {
	if s < constants.MinSeverity || s > constants.MaxSeverity {
		return errors.NewValidation("severity", s,
			fmt.Sprintf("must be between %d and %d", constants.MinSeverity, constants.MaxSeverity))
	}
	return nil
}

// Timestamp rejects the zero time, which is how an unparseable or missing
// timestamp surfaces once decoded.
func Timestamp(t time.Time) error {
	if t.IsZero() {
		return errors.NewValidation("timestamp", nil, "a valid point in time is required")
	}
	return nil
}

// Triggers trims each label and drops blank ones. Repeated labels are kept.
func Triggers(triggers []string) []string {
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Entries checks every key of an entries map.
func Entries(entries map[string]models.HabitEntry) error {
	for key := range entries {
		if err := DateKey(key); err != nil {
			return err
		}
	}
	return nil
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
