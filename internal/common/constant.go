package common

// File names used inside the configured data directory.
const (
	CredentialsFileName = "regno.csv"
	ActivityFileName    = "user_activity_log.csv"
	DatabaseFileName    = "stockkeeper.db"
)
