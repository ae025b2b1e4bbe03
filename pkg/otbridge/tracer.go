package otbridge

import (
	"context"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"google.golang.org/grpc"
)

// Tracer is an opentracing.Tracer bridged onto OpenTelemetry. Spans started by
// either API share a trace when their contexts are linked.
type Tracer struct {
	opentracing.Tracer

	selection Selection
	provider  trace.TracerProvider

	sdkProvider *sdktrace.TracerProvider
	exporter    sdktrace.SpanExporter
	conn        *grpc.ClientConn

	closeOnce sync.Once
	closeErr  error
}

var _ opentracing.Tracer = (*Tracer)(nil)

// Selection returns the configuration the tracer was built from.
func (t *Tracer) Selection() Selection {
	return t.selection
}

// TracerProvider returns the OpenTelemetry view of the tracer. Spans started
// through it are visible to the OpenTracing side as well.
func (t *Tracer) TracerProvider() trace.TracerProvider {
	return t.provider
}

// Exporter returns the span exporter, or nil if the tracer bridges the global
// tracer provider.
func (t *Tracer) Exporter() sdktrace.SpanExporter {
	return t.exporter
}

// ForceFlush flushes spans pending in the tracer provider.
func (t *Tracer) ForceFlush(ctx context.Context) error {
	if t.sdkProvider == nil {
		return nil
	}
	return errors.WithStack(t.sdkProvider.ForceFlush(ctx))
}

// Close shuts down the tracer provider, its exporter, and the gRPC channel.
// It can be called more than once; only the first call has an effect and the
// later calls return its result.
func (t *Tracer) Close(ctx context.Context) error {
	t.closeOnce.Do(func() {
		if t.sdkProvider != nil {
			t.closeErr = multierr.Append(t.closeErr, errors.WithStack(t.sdkProvider.Shutdown(ctx)))
		}
		if t.conn != nil {
			t.closeErr = multierr.Append(t.closeErr, errors.WithStack(t.conn.Close()))
		}
	})
	return t.closeErr
}
