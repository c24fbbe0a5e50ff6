package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
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

func TestObservability_RecordsJobsAndAudits(t *testing.T) {
	reader := metric.NewManualReader()
	obs := newWithReader("docushield-test", reader)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "run-document-audit", "completed")
	obs.RecordJobProcessed(ctx, "run-document-audit", "completed")
	obs.RecordJobDuration(ctx, "run-document-audit", 1500*time.Millisecond, "completed")
	obs.RecordAudit(ctx, "Study Permit", "High", false)

	metrics := collect(t, reader)

	jobs, ok := metrics["jobs.processed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, jobs.DataPoints, 1)
	assert.Equal(t, int64(2), jobs.DataPoints[0].Value)

	audits, ok := metrics["audits.completed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, audits.DataPoints, 1)
	caseType, _ := audits.DataPoints[0].Attributes.Value("case_type")
	assert.Equal(t, "Study Permit", caseType.AsString())

	duration, ok := metrics["jobs.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, 1500.0, duration.DataPoints[0].Sum)
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	obs := &Observability{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(ctx, "x", "failed")
		obs.RecordJobDuration(ctx, "x", time.Second, "failed")
		obs.RecordAudit(ctx, "Work Permit", "Low", true)
		obs.Shutdown()
	})
}

func TestEnableTracing_NoEndpointIsNoop(t *testing.T) {
	obs := &Observability{}
	require.NoError(t, obs.EnableTracing(context.Background(), "docushield-test", TracingConfig{}))
	assert.Nil(t, obs.tracerProvider)
}

func TestInstallTracerProvider_RecordsSpans(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	recorder := tracetest.NewSpanRecorder()
	obs := &Observability{}
	obs.installTracerProvider("docushield-test", TracingConfig{Version: "test"}, sdktrace.WithSpanProcessor(recorder))
	defer obs.Shutdown()

	_, span := otel.Tracer("docushield-workers/audit").Start(context.Background(), "audit.invoke")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "audit.invoke", spans[0].Name())
}
