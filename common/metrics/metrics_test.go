package metrics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fitness-scheduler/common/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metrics.Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := metrics.New(context.Background(), provider.Meter("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestRecordQuery(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.Database.RecordQuery(ctx, "select", "members", 5*time.Millisecond, nil)
	m.Database.RecordQuery(ctx, "insert", "members", 2*time.Millisecond, errors.New("boom"))

	got := collect(t, reader)

	duration, ok := got["db.query.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)

	queryErrors, ok := got["db.query.errors"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, queryErrors.DataPoints, 1)
	assert.Equal(t, int64(1), queryErrors.DataPoints[0].Value)
}

func TestRecordPublish(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.Messaging.RecordPublish(context.Background(), "nats", "fitness.events", time.Millisecond, nil)

	got := collect(t, reader)
	published, ok := got["messaging.messages.published"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, published.DataPoints, 1)
	assert.Equal(t, int64(1), published.DataPoints[0].Value)
	assert.NotContains(t, got, "messaging.message.errors")
}

func TestDependencyStatus(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	require.NoError(t, m.Health.RegisterDependencies(ctx, m.Meter(), "postgres"))
	assert.False(t, m.Health.IsAvailable("postgres"))

	m.Health.RecordDependencyCheck(ctx, "postgres", time.Millisecond, nil)
	assert.True(t, m.Health.IsAvailable("postgres"))

	got := collect(t, reader)
	up, ok := got["dependency.up"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, up.DataPoints, 1)
	assert.Equal(t, int64(1), up.DataPoints[0].Value)

	m.Health.RecordDependencyCheck(ctx, "postgres", time.Millisecond, errors.New("refused"))
	assert.False(t, m.Health.IsAvailable("postgres"))
}

func TestMockIgnoresRecords(t *testing.T) {
	m := metrics.NewMock()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.Database.RecordQuery(ctx, "select", "members", time.Millisecond, errors.New("x"))
		m.Database.RecordAcquire(ctx, time.Millisecond, nil)
		m.Messaging.RecordPublish(ctx, "nats", "s", time.Millisecond, nil)
		m.Health.RecordDependencyCheck(ctx, "postgres", time.Millisecond, nil)
		_ = m.Health.RegisterDependencies(ctx, m.Meter(), "postgres")
		_ = m.Database.RegisterDB(nil, m.Meter())
	})
	assert.Zero(t, m.Runtime.Uptime())
}
