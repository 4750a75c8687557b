package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// prometheusMetrics implements MetricsService on a private registry.
type prometheusMetrics struct {
	registry       *prom.Registry
	gatewayURL     string
	publishOutcome *prom.CounterVec
	pushes         *prom.CounterVec
	duration       prom.Histogram
}

// NewMetricsService registers publisher metrics on reg. With an empty
// gatewayURL Push is a no-op.
func NewMetricsService(reg *prom.Registry, gatewayURL string) MetricsService {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &prometheusMetrics{
		registry:   reg,
		gatewayURL: gatewayURL,
		publishOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gitpublisher",
			Name:      "publish_outcomes_total",
			Help:      "Publish runs by outcome and build result",
		}, []string{"outcome", "result"}),
		pushes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gitpublisher",
			Name:      "merge_pushes_total",
			Help:      "Publish runs by whether HEAD was pushed to the merge target",
		}, []string{"pushed"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "gitpublisher",
			Name:      "publish_duration_seconds",
			Help:      "Duration of publish runs",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(m.publishOutcome, m.pushes, m.duration)
	return m
}

func (m *prometheusMetrics) ObservePublish(
	outcome domain.PublishOutcome,
	result domain.Result,
	pushed bool,
	d time.Duration,
) {
	if m == nil {
		return
	}
	m.publishOutcome.WithLabelValues(string(outcome), result.String()).Inc()
	m.pushes.WithLabelValues(strconv.FormatBool(pushed)).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *prometheusMetrics) Push(ctx context.Context, grouping map[string]string) error {
	if m == nil || m.gatewayURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultPushTimeout)
	defer cancel()
	pusher := push.New(m.gatewayURL, MetricsJobName).Gatherer(m.registry)
	for k, v := range grouping {
		pusher = pusher.Grouping(k, v)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", m.gatewayURL, err)
	}
	return nil
}
