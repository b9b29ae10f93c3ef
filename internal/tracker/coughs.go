package tracker

import (
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// AddCoughLog records an incident. A zero timestamp means now.
func (t *Tracker) AddCoughLog(draft models.CoughLogDraft) (models.CoughLog, error) {
	if err := validation.Severity(draft.Severity); err != nil {
		return models.CoughLog{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ts := draft.Timestamp
	if ts.IsZero() {
		ts = t.now()
	}

	l := models.CoughLog{
		ID:               t.newID(),
		Timestamp:        ts,
		Severity:         draft.Severity,
		PossibleTriggers: validation.Triggers(draft.PossibleTriggers),
	}
	t.logs = append(t.logs, l)

	logger.Debug("Cough log added", "id", l.ID, "severity", l.Severity, "triggers", len(l.PossibleTriggers))
	t.persistLocked("add cough log")
	return l.Clone(), nil
}

// UpdateCoughLog applies patch to the log identified by id.
func (t *Tracker) UpdateCoughLog(id string, patch models.CoughLogPatch) (models.CoughLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.logIndexLocked(id)
	if i < 0 {
		return models.CoughLog{}, errors.NewNotFound("cough log", id)
	}

	updated := t.logs[i].Clone()
	if patch.Timestamp != nil {
		if err := validation.Timestamp(*patch.Timestamp); err != nil {
			return models.CoughLog{}, err
		}
		updated.Timestamp = *patch.Timestamp
	}
	if patch.Severity != nil {
		if err := validation.Severity(*patch.Severity); err != nil {
			return models.CoughLog{}, err
		}
		updated.Severity = *patch.Severity
	}
	if patch.PossibleTriggers != nil {
		updated.PossibleTriggers = validation.Triggers(patch.PossibleTriggers)
	}

	t.logs[i] = updated
	logger.Debug("Cough log updated", "id", id)
	t.persistLocked("update cough log")
	return updated.Clone(), nil
}

// DeleteCoughLog removes the log identified by id.
func (t *Tracker) DeleteCoughLog(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.logIndexLocked(id)
	if i < 0 {
		return errors.NewNotFound("cough log", id)
	}
	t.logs = append(t.logs[:i:i], t.logs[i+1:]...)

	logger.Debug("Cough log deleted", "id", id)
	t.persistLocked("delete cough log")
	return nil
}

// CoughLog returns the log with the given id.
func (t *Tracker) CoughLog(id string) (models.CoughLog, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.logIndexLocked(id)
	if i < 0 {
		return models.CoughLog{}, errors.NewNotFound("cough log", id)
	}
	return t.logs[i].Clone(), nil
}

func (t *Tracker) logIndexLocked(id string) int {
	for i := range t.logs {
		if t.logs[i].ID == id {
			return i
		}
	}
	return -1
}
