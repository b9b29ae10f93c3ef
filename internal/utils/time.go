package utils

import (
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/validation"
)

// DayKey returns the calendar date of t as a YYYY-MM-DD key, using t's location.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDayKey parses a canonical date key into midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if err := validation.DateKey(key); err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse(constants.DateFormat, key)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ResolveDayKey returns key when it is a canonical date. Empty and
// "today" mean now's day, "yesterday" the day before.
func ResolveDayKey(key string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "today":
		return DayKey(now), nil
	case "yesterday":
		return DayKey(now.AddDate(0, 0, -1)), nil
	}
	if err := validation.DateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseTimestamp accepts RFC3339, "YYYY-MM-DD HH:MM" and "HH:MM" (today),
// interpreting the last two in now's location.
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return time.Time{}, validation.Timestamp(time.Time{})
}
