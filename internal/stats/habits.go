package stats

import (
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// CompletionRate is the percentage of habits completed on now's calendar day,
// rounded half up. It is 0 when there are no habits.
func CompletionRate(habits []models.Habit, now time.Time) int {
	total := len(habits)
	if total == 0 {
		return 0
	}

	today := utils.DayKey(now)
	completed := 0
	for _, h := range habits {
		if h.CompletedOn(today) {
			completed++
		}
	}

	// round(completed/total*100) with half-up rounding, in integers
	return (completed*200 + total) / (2 * total)
}

// HabitHistory returns one cell per day for the days ending at end, oldest first.
func HabitHistory(h models.Habit, end time.Time, days int) []models.HabitDay {
	if days <= 0 {
		return nil
	}

	start := utils.StartOfDay(end).AddDate(0, 0, -(days - 1))
	out := make([]models.HabitDay, 0, days)
	for i := range days {
		key := utils.DayKey(start.AddDate(0, 0, i))
		entry, logged := h.Entry(key)
		out = append(out, models.HabitDay{
			Day:       key,
			Completed: logged && entry.Completed,
			Logged:    logged,
		})
	}
	return out
}

// CurrentStreak counts consecutive completed days ending today. An
// incomplete today does not break a streak that ran through yesterday.
func CurrentStreak(h models.Habit, now time.Time) int {
	day := utils.StartOfDay(now)
	if !h.CompletedOn(utils.DayKey(day)) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for h.CompletedOn(utils.DayKey(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// IsDue reports whether a habit is expected on the given day.
// Weekly habits fall on the weekday they were created.
func IsDue(h models.Habit, day time.Time) bool {
	switch h.Frequency {
	case models.FrequencyWeekdays:
		wd := day.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case models.FrequencyWeekends:
		wd := day.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case models.FrequencyWeekly:
		if h.DateCreated.IsZero() {
			return true
		}
		return h.DateCreated.In(day.Location()).Weekday() == day.Weekday()
	default:
		return true
	}
}
