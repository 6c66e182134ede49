// Package telemetry wires OpenTelemetry tracing for the storefront binary.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops tracing.
type ShutdownFunc func(context.Context) error

// NewTracerProvider returns a provider exporting spans as JSON to w.
func NewTracerProvider(w io.Writer, serviceName string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	), nil
}

// Setup installs a stdout tracer provider as the global provider when
// enabled. The returned function must be called on exit.
func Setup(enabled bool, w io.Writer, serviceName string) (ShutdownFunc, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}
	tp, err := NewTracerProvider(w, serviceName)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}
