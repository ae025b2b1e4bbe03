package otbridge

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	processorSpansMetricName = "otbridge.processor.spans"

	resultKey      = attribute.Key("result")
	resultExported = "exported"
	resultDropped  = "dropped"
	resultFailed   = "failed"
)

// syncProcessor exports each span synchronously when it ends. Exports are
// serialized, hence the exporter is never called concurrently.
type syncProcessor struct {
	exporter    sdktrace.SpanExporter
	sampledOnly bool
	logger      *zap.Logger

	spans    metric.Int64Counter
	exported metric.AddOption
	dropped  metric.AddOption
	failed   metric.AddOption

	mu       sync.Mutex
	stopped  bool
	stopOnce sync.Once
	stopErr  error
}

var _ sdktrace.SpanProcessor = (*syncProcessor)(nil)

func newSyncProcessor(exporter sdktrace.SpanExporter, sampledOnly bool, meter metric.Meter, logger *zap.Logger) (*syncProcessor, error) {
	spans, err := meter.Int64Counter(processorSpansMetricName,
		metric.WithDescription("Number of ended spans handled by the span processor."),
		metric.WithUnit("{span}"),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &syncProcessor{
		exporter:    exporter,
		sampledOnly: sampledOnly,
		logger:      logger.Named("processor"),
		spans:       spans,
		exported:    metric.WithAttributes(resultKey.String(resultExported)),
		dropped:     metric.WithAttributes(resultKey.String(resultDropped)),
		failed:      metric.WithAttributes(resultKey.String(resultFailed)),
	}, nil
}

func (p *syncProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd exports the span unless the processor is shut down or the span is
// not sampled while only sampled spans are reported. Export errors are logged
// rather than returned to the caller ending the span.
func (p *syncProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	ctx := context.Background()
	if p.sampledOnly && !s.SpanContext().IsSampled() {
		p.spans.Add(ctx, 1, p.dropped)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.spans.Add(ctx, 1, p.dropped)
		return
	}
	if err := p.exporter.ExportSpans(ctx, []sdktrace.ReadOnlySpan{s}); err != nil {
		p.spans.Add(ctx, 1, p.failed)
		p.logger.Warn("export span",
			zap.String("name", s.Name()),
			zap.Stringer("trace_id", s.SpanContext().TraceID()),
			zap.Error(err),
		)
		return
	}
	p.spans.Add(ctx, 1, p.exported)
}

// Shutdown shuts down the exporter once. Spans ended afterwards are dropped.
func (p *syncProcessor) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.stopped = true
		p.stopErr = errors.WithStack(p.exporter.Shutdown(ctx))
	})
	return p.stopErr
}

// ForceFlush returns immediately since spans are never buffered.
func (p *syncProcessor) ForceFlush(ctx context.Context) error {
	return ctx.Err()
}
