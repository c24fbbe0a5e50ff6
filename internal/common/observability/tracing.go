package observability

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

type TracingConfig struct {
	Endpoint    string // OTLP gRPC collector, host:port
	Insecure    bool
	SampleRatio float64
	Version     string
}

// EnableTracing installs a global tracer provider exporting over OTLP gRPC.
// With an empty endpoint it leaves the no-op provider in place.
func (o *Observability) EnableTracing(ctx context.Context, serviceName string, cfg TracingConfig) error {
	if cfg.Endpoint == "" {
		return nil
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("creating trace exporter: %w", err)
	}

	o.installTracerProvider(serviceName, cfg, sdktrace.WithBatcher(exporter))
	return nil
}

func (o *Observability) installTracerProvider(serviceName string, cfg TracingConfig, exporterOpt sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(cfg.Version),
	)

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRatio >= 1 || cfg.SampleRatio == 0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRatio < 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}

	tp := sdktrace.NewTracerProvider(
		exporterOpt,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(tp)
	o.tracerProvider = tp
	return tp
}
