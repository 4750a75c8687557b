package orchestrator

import (
	"os"
	"time"
)

// Timeout constants for the best-effort reporting after a publish run
var (
	// StatusReportTimeout bounds the GitHub commit status call
	StatusReportTimeout = getTimeoutOrDefault("GITPUBLISHER_STATUS_TIMEOUT", 30*time.Second)
	// RecordSaveTimeout bounds persisting the publish record, lock wait included
	RecordSaveTimeout = getTimeoutOrDefault("GITPUBLISHER_RECORD_TIMEOUT", 15*time.Second)
)

// getTimeoutOrDefault reads a duration from envVar, falling back to def
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil && duration > 0 {
			return duration
		}
	}
	return def
}
