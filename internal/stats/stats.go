// Package stats turns a snapshot of habits and cough logs into the figures
// shown on the dashboard. Every function is read-only over its inputs.
package stats

import (
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// Options tunes the windowing and list lengths of the dashboard
type Options struct {
	WindowDays     int
	TopTriggers    int
	RecentActivity int
}

// DefaultOptions returns the 7 day window, top 3 triggers and 5 activity rows.
func DefaultOptions() Options {
	return Options{
		WindowDays:     constants.DefaultWindowDays,
		TopTriggers:    constants.DefaultTopTriggers,
		RecentActivity: constants.DefaultRecentActivity,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WindowDays <= 0 {
		o.WindowDays = d.WindowDays
	}
	if o.TopTriggers <= 0 {
		o.TopTriggers = d.TopTriggers
	}
	if o.RecentActivity <= 0 {
		o.RecentActivity = d.RecentActivity
	}
	return o
}

// ComputeDashboardStats derives every dashboard figure from one snapshot.
// It fails only when a cough log carries an invalid timestamp.
func ComputeDashboardStats(s models.Snapshot, now time.Time, opts Options) (models.DashboardStats, error) {
	opts = opts.withDefaults()

	recent, err := RecentCoughs(s.CoughLogs, now, opts.WindowDays)
	if err != nil {
		return models.DashboardStats{}, err
	}

	activity, err := RecentActivity(s.CoughLogs, opts.RecentActivity)
	if err != nil {
		return models.DashboardStats{}, err
	}

	return models.DashboardStats{
		TotalHabits:          len(s.Habits),
		HabitCompletionRate:  CompletionRate(s.Habits, now),
		TotalCoughIncidents:  len(s.CoughLogs),
		RecentCoughIncidents: len(recent),
		TopTriggers:          RankTriggers(recent, opts.TopTriggers),
		RecentActivity:       activity,
	}, nil
}
