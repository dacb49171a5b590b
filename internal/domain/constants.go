package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Path constants
const (
	// AppDirName is the per-user state directory under $HOME.
	AppDirName = ".actionguard"
	// ConfigFileName is the config file inside AppDirName.
	ConfigFileName = "config.yaml"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of audit records to display
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
