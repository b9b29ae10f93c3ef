package constants

import "time"

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitlog"
	Version            = "v0.1.0"

	// KeyringConfigValue selects the connection string stored in the OS keyring.
	KeyringConfigValue = "keyring"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used to persist full cough log timestamps
	TimestampFormat = time.RFC3339Nano

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"

	// Aggregation defaults
	DefaultWindowDays     = 7
	DefaultTopTriggers    = 3
	DefaultRecentActivity = 5

	// Severity bounds for cough logs
	MinSeverity = 1
	MaxSeverity = 10

	// Storage document version for the JSON backend
	JSONStoreVersion = 1
)
