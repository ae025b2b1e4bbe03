package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kakao/otbridge/internal/buildinfo"
	"github.com/kakao/otbridge/internal/flags"
	"github.com/kakao/otbridge/pkg/otbridge"
	"github.com/kakao/otbridge/pkg/util/log"
	"github.com/kakao/otbridge/pkg/util/telemetry"
)

const bridgeModulePath = "go.opentelemetry.io/otel/bridge/opentracing"

func newLogger(c *cli.Context) (*zap.Logger, error) {
	logOpts, err := flags.ParseLoggerFlags(c, appName+".log")
	if err != nil {
		return nil, err
	}
	return log.New(logOpts...)
}

func check(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	props, err := flags.ParsePropertiesFlags(c)
	if err != nil {
		return err
	}
	factory, err := otbridge.NewTracerFactory(
		otbridge.WithProperties(props),
		otbridge.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	sel, err := factory.Resolve()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, sel.String())
	return err
}

func emit(c *cli.Context) error {
	numSpans := c.Int(flagSpans.Name)
	if numSpans < 0 {
		return fmt.Errorf("invalid value \"%d\" for flag --%s", numSpans, flagSpans.Name)
	}
	concurrency := c.Int(flagConcurrency.Name)
	if concurrency < 1 {
		return fmt.Errorf("invalid value \"%d\" for flag --%s", concurrency, flagConcurrency.Name)
	}

	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger = logger.Named(appName)
	logger.Info("starting", buildinfo.ReadVersionInfo().Fields()...)

	ctx := c.Context

	meterProviderOpts, err := flags.ParseTelemetryFlags(ctx, c, appName)
	if err != nil {
		return err
	}
	mp, stopMeterProvider, err := telemetry.NewMeterProvider(meterProviderOpts...)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.Duration(flags.TelemetryExporterStopTimeout.Name))
		defer cancel()
		if err := stopMeterProvider(ctx); err != nil {
			logger.Warn("could not stop meter provider", zap.Error(err))
		}
	}()

	grpcDialOpts, err := flags.ParseGRPCDialOptionFlags(c)
	if err != nil {
		return err
	}
	props, err := flags.ParsePropertiesFlags(c)
	if err != nil {
		return err
	}

	factory, err := otbridge.NewTracerFactory(
		otbridge.WithProperties(props),
		otbridge.WithLogger(logger),
		otbridge.WithMeterProvider(mp),
		otbridge.WithGRPCDialOptions(grpcDialOpts...),
		otbridge.WithSpanWriter(c.App.Writer),
	)
	if err != nil {
		return err
	}
	tracer, err := factory.GetTracer()
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.Duration(flagShutdownTimeout.Name))
		defer cancel()
		if err := tracer.Close(ctx); err != nil {
			logger.Warn("could not close tracer", zap.Error(err))
		}
	}()

	opName := c.String(flagOperationName.Name)
	parent := tracer.StartSpan(opName)
	parent.SetTag("spans", numSpans)

	parentCtx, err := roundTrip(tracer, parent.Context())
	if err != nil {
		parent.Finish()
		return err
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := 0; i < numSpans; i++ {
		idx := i
		g.Go(func() error {
			child := tracer.StartSpan(opName+"-"+strconv.Itoa(idx), opentracing.ChildOf(parentCtx))
			child.SetTag("index", idx)
			child.Finish()
			return nil
		})
	}
	_ = g.Wait()
	parent.Finish()

	if _, err := fmt.Fprintln(c.App.Writer, tracer.Selection().String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.App.Writer, "emitted %d spans\n", numSpans+1); err != nil {
		return err
	}
	// The in-memory exporter drops its spans on close.
	if exporter, ok := tracer.Exporter().(*tracetest.InMemoryExporter); ok {
		if _, err := fmt.Fprintf(c.App.Writer, "recorded %d spans\n", len(exporter.GetSpans())); err != nil {
			return err
		}
	}
	return nil
}

// roundTrip carries the span context over HTTP headers as a remote service
// would receive it. A span context that cannot be injected, for instance,
// that of the no-op tracer, is returned as it is.
func roundTrip(tracer opentracing.Tracer, spanCtx opentracing.SpanContext) (opentracing.SpanContext, error) {
	header := http.Header{}
	carrier := opentracing.HTTPHeadersCarrier(header)
	if err := tracer.Inject(spanCtx, opentracing.HTTPHeaders, carrier); err != nil {
		if errors.Is(err, opentracing.ErrInvalidSpanContext) {
			return spanCtx, nil
		}
		return nil, errors.WithMessage(err, "inject")
	}
	extracted, err := tracer.Extract(opentracing.HTTPHeaders, carrier)
	if err != nil {
		return nil, errors.WithMessage(err, "extract")
	}
	return extracted, nil
}

func printVersion(c *cli.Context) error {
	info := buildinfo.ReadVersionInfo()
	if _, err := fmt.Fprintln(c.App.Writer, info.String()); err != nil {
		return err
	}
	if v, ok := info.Dependency(bridgeModulePath); ok {
		if _, err := fmt.Fprintln(c.App.Writer, "Bridge:      "+bridgeModulePath+" "+v); err != nil {
			return err
		}
	}
	return nil
}
