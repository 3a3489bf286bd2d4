package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestStatementMetrics_RecordBuild(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewStatementMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	tenantID := uuid.New()
	m.RecordBuild(ctx, tenantID, 5*time.Millisecond, nil)
	m.RecordBuild(ctx, tenantID, 7*time.Millisecond, nil)
	m.RecordBuild(ctx, tenantID, 3*time.Millisecond, errors.New("rates missing"))

	metrics := collect(t, reader)

	sum, ok := metrics["customer_statement_builds_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byOutcome := map[string]int64{}
	for _, dp := range sum.DataPoints {
		outcome, _ := dp.Attributes.Value(AttrOutcome)
		byOutcome[outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{OutcomeSuccess: 2, OutcomeError: 1}, byOutcome)

	hist, ok := metrics["customer_statement_build_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestNewStatementMetrics_NilMeter(t *testing.T) {
	_, err := NewStatementMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestStatementMetrics_NilSafe(t *testing.T) {
	var m *StatementMetrics
	assert.NotPanics(t, func() {
		m.RecordBuild(context.Background(), uuid.New(), time.Millisecond, nil)
	})
}
