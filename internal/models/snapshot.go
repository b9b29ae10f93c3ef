package models

// Snapshot is a read-only view of both collections taken at one instant.
// CoughLogs are kept in insertion order.
type Snapshot struct {
	Habits    []Habit    `json:"habits"`
	CoughLogs []CoughLog `json:"cough_logs"`
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Habits:    make([]Habit, len(s.Habits)),
		CoughLogs: make([]CoughLog, len(s.CoughLogs)),
	}
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	for i, l := range s.CoughLogs {
		out.CoughLogs[i] = l.Clone()
	}
	return out
}

// TriggerCount is one row of the trigger ranking
type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// DashboardStats is the summary shown on the dashboard
type DashboardStats struct {
	TotalHabits          int            `json:"total_habits"`
	HabitCompletionRate  int            `json:"habit_completion_rate"`
	TotalCoughIncidents  int            `json:"total_cough_incidents"`
	RecentCoughIncidents int            `json:"recent_cough_incidents"`
	TopTriggers          []TriggerCount `json:"top_triggers"`
	RecentActivity       []CoughLog     `json:"recent_activity"`
}

// HabitDay is one cell of a habit history row
type HabitDay struct {
	Day       string `json:"day"`
	Completed bool   `json:"completed"`
	Logged    bool   `json:"logged"`
}
