package telemetry

import (
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type meterProviderConfig struct {
	exporter metricsdk.Exporter
	resource *resource.Resource
	interval time.Duration

	hostInstrumentation        bool
	runtimeInstrumentation     bool
	runtimeInstrumentationOpts []runtime.Option
}

func newMeterProviderConfig(opts []MeterProviderOption) meterProviderConfig {
	cfg := meterProviderConfig{
		resource: resource.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MeterProviderOption configures the meter provider created by
// NewMeterProvider.
type MeterProviderOption func(*meterProviderConfig)

// WithExporter sets the metric exporter. Without an exporter, the meter
// provider is a no-op.
func WithExporter(exporter metricsdk.Exporter) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.exporter = exporter
	}
}

func WithResource(resource *resource.Resource) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.resource = resource
	}
}

// WithInterval sets the interval between exports. The default of the
// periodic reader is used if it is not positive.
func WithInterval(interval time.Duration) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.interval = interval
	}
}

// WithHostInstrumentation exports host metrics such as CPU and memory usage.
func WithHostInstrumentation() MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.hostInstrumentation = true
	}
}

// WithRuntimeInstrumentation exports Go runtime metrics.
func WithRuntimeInstrumentation(opts ...runtime.Option) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.runtimeInstrumentation = true
		cfg.runtimeInstrumentationOpts = opts
	}
}
