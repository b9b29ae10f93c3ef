package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

// Document is the on-disk layout of the JSON backend
type Document struct {
	Version   int               `json:"version"`
	Habits    []models.Habit    `json:"habits"`
	CoughLogs []models.CoughLog `json:"cough_logs"`
}

type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &Document{
		Version:   constants.JSONStoreVersion,
		Habits:    []models.Habit{},
		CoughLogs: []models.CoughLog{},
	}
	return s.write()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitlog init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		var perr *time.ParseError
		if stderrors.As(err, &perr) {
			return fmt.Errorf("failed to parse storage: %w",
				errors.NewValidation("timestamp", perr.Value, "not a valid timestamp"))
		}
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > constants.JSONStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application",
			doc.Version, constants.JSONStoreVersion)
	}

	// Older or hand-edited files may omit optional collections.
	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.CoughLogs == nil {
		doc.CoughLogs = []models.CoughLog{}
	}
	for i := range doc.Habits {
		if doc.Habits[i].Entries == nil {
			doc.Habits[i].Entries = make(map[string]models.HabitEntry)
		}
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Snapshot() (models.Snapshot, error) {
	if s.doc == nil {
		return models.Snapshot{}, fmt.Errorf("storage not loaded")
	}
	return models.Snapshot{Habits: s.doc.Habits, CoughLogs: s.doc.CoughLogs}.Clone(), nil
}

func (s *JSONStore) Save(snap models.Snapshot) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	c := snap.Clone()
	s.doc.Habits = c.Habits
	s.doc.CoughLogs = c.CoughLogs
	return s.write()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// write replaces the file atomically so a crash never leaves half a document.
func (s *JSONStore) write() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
