package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracingConfig holds configuration for OpenTelemetry tracing
type TracingConfig struct {
	// Enabled controls whether spans are exported
	Enabled bool

	// Endpoint is the OTLP gRPC collector address (host:port)
	Endpoint string

	// Insecure disables TLS to the collector
	Insecure bool

	// ServiceName is reported as service.name
	ServiceName string

	// Release is reported as service.version
	Release string

	// SampleRatio is the fraction of root traces sampled (0.0 to 1.0)
	SampleRatio float64
}

// InitTracing installs a global tracer provider exporting over OTLP gRPC.
// Returns a shutdown function that flushes pending spans.
func InitTracing(ctx context.Context, cfg TracingConfig, logger *slog.Logger) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		logger.Info("Tracing disabled (OTEL_ENABLED=false)")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.Release),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 {
		ratio = 1.0
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing initialized",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"sample_ratio", ratio,
	)

	return tp.Shutdown, nil
}
