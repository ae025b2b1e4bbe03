// Package telemetry creates the meter provider of the process.
package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
)

// StopMeterProvider is the type for stop function of meter provider.
// It flushes the remaining metrics and stops both meter provider and
// exporter.
type StopMeterProvider func(context.Context) error

// NewMeterProvider creates a new meter provider and its stop function.
func NewMeterProvider(opts ...MeterProviderOption) (metric.MeterProvider, StopMeterProvider, error) {
	cfg := newMeterProviderConfig(opts)

	stop := func(context.Context) error { return nil }

	if cfg.exporter == nil {
		return noopmetric.NewMeterProvider(), stop, nil
	}

	var readerOpts []metricsdk.PeriodicReaderOption
	if cfg.interval > 0 {
		readerOpts = append(readerOpts, metricsdk.WithInterval(cfg.interval))
	}
	reader := metricsdk.NewPeriodicReader(cfg.exporter, readerOpts...)

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(cfg.resource),
		metricsdk.WithReader(reader),
	)
	// The reader shuts the exporter down.
	stop = func(ctx context.Context) error {
		return errors.WithStack(mp.Shutdown(ctx))
	}

	if cfg.hostInstrumentation {
		if err := host.Start(host.WithMeterProvider(mp)); err != nil {
			_ = stop(context.Background())
			return nil, nil, errors.WithMessage(err, "telemetry: host instrumentation")
		}
	}

	if cfg.runtimeInstrumentation {
		rtOpts := append(cfg.runtimeInstrumentationOpts, runtime.WithMeterProvider(mp))
		if err := runtime.Start(rtOpts...); err != nil {
			_ = stop(context.Background())
			return nil, nil, errors.WithMessage(err, "telemetry: runtime instrumentation")
		}
	}

	return mp, stop, nil
}
