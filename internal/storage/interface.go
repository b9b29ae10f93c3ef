package storage

import "github.com/julianstephens/habitlog/internal/models"

// Provider persists the habit and cough log collections. The tracker
// reads one snapshot at startup and writes the full snapshot after every
// mutation.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Collections
	Snapshot() (models.Snapshot, error)
	Save(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
