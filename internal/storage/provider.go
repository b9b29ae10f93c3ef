package storage

import (
	"strings"

	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

// Backend names the storage implementation selected for a target
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSON     Backend = "json"
	BackendPostgres Backend = "postgres"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// DetectBackend picks a backend from the shape of target: PostgreSQL URLs
// and key=value DSNs, *.json files, and SQLite for everything else.
func DetectBackend(target string) Backend {
	switch {
	case postgres.IsConnString(target), strings.Contains(target, "dbname="):
		return BackendPostgres
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// New returns an unopened provider for target. Call Init or Load before use.
func New(target string) Provider {
	switch DetectBackend(target) {
	case BackendPostgres:
		return postgres.New(target)
	case BackendJSON:
		return NewJSONStore(target)
	default:
		return sqlite.NewStore(target)
	}
}
