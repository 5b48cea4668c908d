package config

const (
	// DefaultUploadDir is where uploaded spreadsheets are retained between
	// sessions.
	DefaultUploadDir = "./uploaded_files"

	// Session lifetime in minutes when services.yaml does not override it.
	DefaultSessionTTLMinutes = 120

	// Maintenance Schedules (cron syntax)
	DefaultCleanupSchedule = "*/10 * * * *" // expired-session sweep
	DefaultRescanSchedule  = "*/5 * * * *"  // upload-dir rescan

	// Default service ports
	DefaultIngestPort  = 7143
	DefaultGatewayPort = 8080

	// MaxUploadBytes caps a multipart upload parse.
	MaxUploadBytes = 32 << 20
)
