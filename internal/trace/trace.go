// Package trace owns the process-wide OpenTelemetry tracer. Spans are only
// recorded after Init or InitWithWriter; until then StartSpan is a no-op.
package trace

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "stock-dashboard"

// Version is reported as service.version; set with -ldflags "-X".
var Version = "dev"

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	output         io.Closer
	enabled        bool
)

// Init enables tracing when LOG_TRACING_ENABLED=true. TRACE_OUTPUT picks the
// destination: stdout (default), stderr, or a file path opened for append.
func Init() error {
	if os.Getenv("LOG_TRACING_ENABLED") != "true" {
		enabled = false
		return nil
	}

	var w io.Writer = os.Stdout
	switch dest := os.Getenv("TRACE_OUTPUT"); dest {
	case "", "stdout":
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open trace output: %w", err)
		}
		w, output = f, f
	}
	return InitWithWriter(w, os.Getenv("TRACE_PRETTY") == "true")
}

// InitWithWriter enables tracing with spans exported synchronously to w.
func InitWithWriter(w io.Writer, pretty bool) error {
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(Version),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	enabled = true
	return nil
}

// Shutdown flushes spans and disables tracing.
func Shutdown(ctx context.Context) error {
	enabled = false
	var err error
	if tracerProvider != nil {
		err = tracerProvider.Shutdown(ctx)
		tracerProvider = nil
	}
	if output != nil {
		_ = output.Close()
		output = nil
	}
	return err
}

func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns the ids of the span in ctx, if tracing is on and one is active.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
