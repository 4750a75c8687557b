package service

import (
	"context"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
)

// MetricsService records publish outcomes.
type MetricsService interface {
	ObservePublish(outcome domain.PublishOutcome, result domain.Result, pushed bool, d time.Duration)
	// Push ships collected metrics, labelled with grouping, to the configured gateway.
	Push(ctx context.Context, grouping map[string]string) error
}
