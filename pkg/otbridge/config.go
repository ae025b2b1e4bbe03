package otbridge

import (
	"io"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/kakao/otbridge/pkg/util/properties"
)

// DefaultInstrumentationName names the tracer handed to the bridge and the
// meter of the span processor.
const DefaultInstrumentationName = "github.com/kakao/otbridge"

type config struct {
	props               properties.Properties
	logger              *zap.Logger
	sampler             sdktrace.Sampler
	meterProvider       metric.MeterProvider
	grpcDialOpts        []grpc.DialOption
	spanWriter          io.Writer
	instrumentationName string
	propagator          propagation.TextMapPropagator
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		props:               properties.Default(),
		logger:              zap.NewNop(),
		meterProvider:       otel.GetMeterProvider(),
		instrumentationName: DefaultInstrumentationName,
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	cfg.logger = cfg.logger.Named("otbridge")
	if cfg.spanWriter == nil {
		stdLogger, err := zap.NewStdLogAt(cfg.logger.Named("spans"), zap.InfoLevel)
		if err != nil {
			return config{}, errors.WithStack(err)
		}
		cfg.spanWriter = stdLogger.Writer()
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.props == nil {
		return errors.New("otbridge: no properties")
	}
	if c.logger == nil {
		return errors.New("otbridge: no logger")
	}
	if c.meterProvider == nil {
		return errors.New("otbridge: no meter provider")
	}
	if len(c.instrumentationName) == 0 {
		return errors.New("otbridge: empty instrumentation name")
	}
	if c.propagator == nil {
		return errors.New("otbridge: no text map propagator")
	}
	return nil
}

// Option configures a TracerFactory.
type Option func(*config)

// WithProperties sets the source of the configuration keys. The environment
// variables are read if it is not set.
func WithProperties(props properties.Properties) Option {
	return func(c *config) {
		c.props = props
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSampler sets the sampler of the tracer provider. The provider's default,
// parent-based always-on sampling, is used if it is not set.
func WithSampler(sampler sdktrace.Sampler) Option {
	return func(c *config) {
		c.sampler = sampler
	}
}

// WithMeterProvider sets the meter provider that counts the processed spans.
// The global meter provider is used if it is not set.
func WithMeterProvider(meterProvider metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = meterProvider
	}
}

// WithGRPCDialOptions appends dial options for the channel to the collector.
// The channel is always plaintext.
func WithGRPCDialOptions(dialOpts ...grpc.DialOption) Option {
	return func(c *config) {
		c.grpcDialOpts = append(c.grpcDialOpts, dialOpts...)
	}
}

// WithSpanWriter sets the destination of the logging exporter. Spans are
// logged at INFO level by the factory's logger if it is not set.
func WithSpanWriter(w io.Writer) Option {
	return func(c *config) {
		c.spanWriter = w
	}
}

func WithInstrumentationName(name string) Option {
	return func(c *config) {
		c.instrumentationName = name
	}
}

// WithTextMapPropagator sets the propagator used by Inject and Extract of
// the tracer. W3C trace context and baggage are used if it is not set.
func WithTextMapPropagator(propagator propagation.TextMapPropagator) Option {
	return func(c *config) {
		c.propagator = propagator
	}
}
