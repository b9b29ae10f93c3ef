package models

import (
	"slices"
	"time"
)

// CoughLog is a single timestamped symptom incident
type CoughLog struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Severity         int       `json:"severity"`
	PossibleTriggers []string  `json:"possible_triggers,omitempty"`
}

// Clone returns a copy of the log that shares no trigger storage with l.
func (l CoughLog) Clone() CoughLog {
	c := l
	c.PossibleTriggers = slices.Clone(l.PossibleTriggers)
	return c
}

// CoughLogDraft carries the user supplied fields for a new cough log
type CoughLogDraft struct {
	Timestamp        time.Time // zero means "now"
	Severity         int
	PossibleTriggers []string
}

// CoughLogPatch enumerates the fields UpdateCoughLog may overwrite.
type CoughLogPatch struct {
	Timestamp        *time.Time
	Severity         *int
	PossibleTriggers []string // replaced only when non-nil
}
