package service

import "time"

// Timeout constants for service operations
const (
	// DefaultPushTimeout bounds a Pushgateway push
	DefaultPushTimeout = 10 * time.Second
	// MetricsJobName is the Pushgateway job the publisher reports under
	MetricsJobName = "gitpublisher"
)
