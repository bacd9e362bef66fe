package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStatus = "status"
	attrResult = "result"
)

// Status and result values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	ResultProcessed = "processed"
	ResultFailed    = "failed"
)

// Metrics provides methods for recording archive observability metrics.
// The zero value is a no-op recorder, so callers never need to nil-check.
type Metrics struct {
	invocationsTotal   metric.Int64Counter
	invocationDuration metric.Float64Histogram
	messagesTotal      metric.Int64Counter
	tokenRefreshTotal  metric.Int64Counter
	storagePutsTotal   metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.invocationsTotal, err = meter.Int64Counter(
		"archive_invocations_total",
		metric.WithDescription("Total number of archive invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive_invocations_total counter: %w", err)
	}

	m.invocationDuration, err = meter.Float64Histogram(
		"archive_invocation_duration_seconds",
		metric.WithDescription("Archive invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive_invocation_duration_seconds histogram: %w", err)
	}

	m.messagesTotal, err = meter.Int64Counter(
		"archive_messages_total",
		metric.WithDescription("Total number of messages handled by the archive pipeline"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive_messages_total counter: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"gmail_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_token_refresh_total counter: %w", err)
	}

	m.storagePutsTotal, err = meter.Int64Counter(
		"storage_puts_total",
		metric.WithDescription("Total number of archive object writes"),
		metric.WithUnit("{object}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage_puts_total counter: %w", err)
	}

	return m, nil
}

// RecordInvocation records one completed archive invocation.
func (m *Metrics) RecordInvocation(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.invocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.invocationsTotal.Add(ctx, 1, attrs)
	m.invocationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordMessage records the outcome of one message in the batch.
func (m *Metrics) RecordMessage(ctx context.Context, result string) {
	if m == nil || m.messagesTotal == nil {
		return
	}
	m.messagesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordTokenRefresh records one token refresh attempt.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, status string) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// RecordStoragePut records one archive object write attempt.
func (m *Metrics) RecordStoragePut(ctx context.Context, status string) {
	if m == nil || m.storagePutsTotal == nil {
		return
	}
	m.storagePutsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// StatusOf maps an error to a metric status value.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
