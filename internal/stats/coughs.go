package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// WindowStart returns the inclusive lower bound of the recent window.
// Days are subtracted on the calendar, so a DST shift does not move the bound
// off the wall-clock time of now.
func WindowStart(now time.Time, windowDays int) time.Time {
	return now.AddDate(0, 0, -windowDays)
}

// RecentCoughs returns the logs whose timestamp lies in [now-windowDays, now],
// both bounds inclusive, in their original order.
func RecentCoughs(logs []models.CoughLog, now time.Time, windowDays int) ([]models.CoughLog, error) {
	start := WindowStart(now, windowDays)

	var recent []models.CoughLog
	for _, l := range logs {
		if err := validation.Timestamp(l.Timestamp); err != nil {
			return nil, fmt.Errorf("cough log %s: %w", l.ID, err)
		}
		if l.Timestamp.Before(start) || l.Timestamp.After(now) {
			continue
		}
		recent = append(recent, l)
	}
	return recent, nil
}

// RankTriggers tallies every trigger occurrence across logs and returns the
// limit most frequent, highest count first and ties broken by name.
// A trigger repeated within one log counts once per occurrence.
func RankTriggers(logs []models.CoughLog, limit int) []models.TriggerCount {
	tally := make(map[string]int)
	for _, l := range logs {
		for _, trigger := range l.PossibleTriggers {
			tally[trigger]++
		}
	}

	ranked := make([]models.TriggerCount, 0, len(tally))
	for trigger, count := range tally {
		ranked = append(ranked, models.TriggerCount{Trigger: trigger, Count: count})
	}
	slices.SortFunc(ranked, func(a, b models.TriggerCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Trigger, b.Trigger)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RecentActivity returns the limit latest logs by timestamp, newest first.
// Logs sharing a timestamp keep their storage order.
func RecentActivity(logs []models.CoughLog, limit int) ([]models.CoughLog, error) {
	sorted := make([]models.CoughLog, 0, len(logs))
	for _, l := range logs {
		if err := validation.Timestamp(l.Timestamp); err != nil {
			return nil, fmt.Errorf("cough log %s: %w", l.ID, err)
		}
		sorted = append(sorted, l)
	}

	slices.SortStableFunc(sorted, func(a, b models.CoughLog) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
