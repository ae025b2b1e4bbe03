// Package otbridge builds an OpenTracing tracer bridged onto OpenTelemetry.
//
// The exporter is chosen by the key "ot.otel.exporter":
//
//   - absent or empty: no exporter; the global OpenTelemetry tracer provider
//     is bridged.
//   - "jaeger": OTLP over a plaintext gRPC channel to the collector given by
//     "ot.otel.exporter.jaeger.address", with the service name given by
//     "ot.otel.exporter.jaeger.serviceName".
//   - "inmemory": spans are kept in memory.
//   - "logging": spans are written as JSON lines.
//
// Spans are exported synchronously when they end. Setting
// "ot.otel.exporter.jaeger.reportOnlySampled" drops spans that are recorded
// but not sampled.
package otbridge

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	otelbridge "go.opentelemetry.io/otel/bridge/opentracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// TracerFactory creates tracers from the configuration keys.
type TracerFactory struct {
	config
}

// NewTracerFactory returns a factory. It fails only if an option is invalid;
// the configuration keys are not read until GetTracer or Resolve.
func NewTracerFactory(opts ...Option) (*TracerFactory, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &TracerFactory{config: cfg}, nil
}

// Resolve reads and validates the configuration keys without building
// anything.
func (f *TracerFactory) Resolve() (Selection, error) {
	return Resolve(f.props, f.logger)
}

// GetTracer reads the configuration and builds a tracer. Configuration errors
// are reported as *InvalidConfigError or *UnsupportedModeError. It never waits
// for the collector since the gRPC channel connects lazily.
//
// The caller should close the returned tracer.
func (f *TracerFactory) GetTracer() (*Tracer, error) {
	sel, err := f.Resolve()
	if err != nil {
		return nil, err
	}
	if _, ok := sel.Exporter.(NoopConfig); ok {
		return f.newTracer(sel, otel.GetTracerProvider().Tracer(f.instrumentationName), nil, nil, nil), nil
	}

	p, err := f.newPipeline(sel.Exporter)
	if err != nil {
		return nil, err
	}

	meter := f.meterProvider.Meter(f.instrumentationName)
	processor, err := newSyncProcessor(p.exporter, sel.ReportOnlySampled, meter, f.logger)
	if err != nil {
		p.close(f.logger)
		return nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(p.resource),
	}
	if f.sampler != nil {
		tpOpts = append(tpOpts, sdktrace.WithSampler(f.sampler))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	f.logger.Info("created tracer", zap.Stringer("selection", sel))
	return f.newTracer(sel, tp.Tracer(f.instrumentationName), tp, p.exporter, p.conn), nil
}

func (f *TracerFactory) newTracer(sel Selection, otelTracer trace.Tracer, tp *sdktrace.TracerProvider, exporter sdktrace.SpanExporter, conn *grpc.ClientConn) *Tracer {
	bridgeTracer, wrapperProvider := otelbridge.NewTracerPair(otelTracer)
	bridgeTracer.SetTextMapPropagator(f.propagator)
	logger := f.logger.Named("bridge")
	bridgeTracer.SetWarningHandler(func(msg string) {
		logger.Warn(msg)
	})
	return &Tracer{
		Tracer:      bridgeTracer,
		selection:   sel,
		provider:    wrapperProvider,
		sdkProvider: tp,
		exporter:    exporter,
		conn:        conn,
	}
}

// pipeline holds what is built for an exporter before it is attached to a
// tracer provider.
type pipeline struct {
	exporter sdktrace.SpanExporter
	resource *resource.Resource
	conn     *grpc.ClientConn
}

func (p pipeline) close(logger *zap.Logger) {
	if p.conn == nil {
		return
	}
	if err := p.conn.Close(); err != nil {
		logger.Warn("close grpc channel", zap.Error(err))
	}
}

func (f *TracerFactory) newPipeline(exporterConfig ExporterConfig) (pipeline, error) {
	switch cfg := exporterConfig.(type) {
	case JaegerConfig:
		return f.newJaegerPipeline(cfg)
	case InMemoryConfig:
		return pipeline{
			exporter: tracetest.NewInMemoryExporter(),
			resource: resource.Default(),
		}, nil
	case LoggingConfig:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(f.spanWriter))
		if err != nil {
			return pipeline{}, errors.Wrap(err, "otbridge: logging exporter")
		}
		return pipeline{
			exporter: exporter,
			resource: resource.Default(),
		}, nil
	default:
		return pipeline{}, errors.Errorf("otbridge: unexpected exporter %T", exporterConfig)
	}
}

func (f *TracerFactory) newJaegerPipeline(cfg JaegerConfig) (pipeline, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		if !errors.Is(err, resource.ErrPartialResource) {
			return pipeline{}, errors.Wrap(err, "otbridge: resource")
		}
		f.logger.Warn("partial resource", zap.Error(err))
	}
	if res == nil {
		res = resource.Default()
	}

	dialOpts := make([]grpc.DialOption, 0, len(f.grpcDialOpts)+1)
	dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	dialOpts = append(dialOpts, f.grpcDialOpts...)
	conn, err := grpc.Dial(cfg.Address.String(), dialOpts...)
	if err != nil {
		return pipeline{}, errors.Wrapf(err, "otbridge: dial %s", cfg.Address)
	}

	expOpts := []otlptracegrpc.Option{otlptracegrpc.WithGRPCConn(conn)}
	if cfg.Deadline > 0 {
		expOpts = append(expOpts, otlptracegrpc.WithTimeout(cfg.Deadline))
	}
	exporter, err := otlptracegrpc.New(ctx, expOpts...)
	if err != nil {
		_ = conn.Close()
		return pipeline{}, errors.Wrap(err, "otbridge: otlp exporter")
	}

	return pipeline{
		exporter: exporter,
		resource: res,
		conn:     conn,
	}, nil
}
