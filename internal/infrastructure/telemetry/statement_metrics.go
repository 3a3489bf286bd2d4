package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets a nil meter.
var ErrMeterNil = errors.New("meter cannot be nil")

// Statement build outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// StatementMetrics records customer statement builds.
type StatementMetrics struct {
	builds   *Counter
	duration *Histogram
}

// NewStatementMetrics registers the statement instruments on meter.
func NewStatementMetrics(meter metric.Meter) (*StatementMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	builds, err := NewCounter(meter,
		"customer_statement_builds_total",
		"Number of customer statements built",
		"{build}",
	)
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "customer_statement_build_duration_seconds",
		Description: "Time spent building a customer statement",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &StatementMetrics{builds: builds, duration: duration}, nil
}

// RecordBuild records one build with its outcome and duration.
func (m *StatementMetrics) RecordBuild(ctx context.Context, tenantID uuid.UUID, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	attrs := []attribute.KeyValue{
		AttrTenantID.String(tenantID.String()),
		AttrOutcome.String(outcome),
	}
	m.builds.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}
