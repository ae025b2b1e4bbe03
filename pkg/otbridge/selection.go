package otbridge

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kakao/otbridge/pkg/util/netutil"
	"github.com/kakao/otbridge/pkg/util/properties"
)

// Configuration keys read by Resolve.
const (
	KeyExporter                = "ot.otel.exporter"
	KeyJaegerServiceName       = KeyExporter + ".jaeger.serviceName"
	KeyJaegerAddress           = KeyExporter + ".jaeger.address"
	KeyJaegerDeadline          = KeyExporter + ".jaeger.deadline"
	KeyJaegerReportOnlySampled = KeyExporter + ".jaeger.reportOnlySampled"
)

// Values of KeyExporter.
const (
	ModeJaeger   = "jaeger"
	ModeInMemory = "inmemory"
	ModeLogging  = "logging"
)

const (
	formatServiceName = "SERVICE_NAME"
	formatHostPort    = "HOST:PORT"
)

// ExporterConfig is the exporter chosen by the configuration. It is one of
// NoopConfig, JaegerConfig, InMemoryConfig, and LoggingConfig.
type ExporterConfig interface {
	fmt.Stringer
	exporterConfig()
}

// NoopConfig selects no exporter. The tracer bridges the global OpenTelemetry
// tracer provider.
type NoopConfig struct{}

// JaegerConfig exports spans to a Jaeger collector by OTLP over a plaintext
// gRPC channel.
type JaegerConfig struct {
	ServiceName string
	Address     netutil.HostPort
	// Deadline is the timeout of each export. Zero means the exporter's
	// default.
	Deadline time.Duration
}

// InMemoryConfig keeps exported spans in memory.
type InMemoryConfig struct{}

// LoggingConfig writes exported spans as JSON lines.
type LoggingConfig struct{}

func (NoopConfig) exporterConfig()     {}
func (JaegerConfig) exporterConfig()   {}
func (InMemoryConfig) exporterConfig() {}
func (LoggingConfig) exporterConfig()  {}

func (NoopConfig) String() string { return "noop" }

func (c JaegerConfig) String() string {
	return fmt.Sprintf("%s(serviceName=%s, address=%s, deadline=%v)", ModeJaeger, c.ServiceName, c.Address, c.Deadline)
}

func (InMemoryConfig) String() string { return ModeInMemory }

func (LoggingConfig) String() string { return ModeLogging }

// Selection is the validated result of reading the configuration.
type Selection struct {
	Exporter ExporterConfig
	// ReportOnlySampled drops spans that are recorded but not sampled. It is
	// always false for NoopConfig.
	ReportOnlySampled bool
}

func (s Selection) String() string {
	return fmt.Sprintf("exporter=%s reportOnlySampled=%t", s.Exporter, s.ReportOnlySampled)
}

// Resolve reads and validates the configuration keys. Nothing is built. It
// returns an *InvalidConfigError or an *UnsupportedModeError if the
// configuration is unusable. Problems with optional keys are logged and
// ignored.
func Resolve(props properties.Properties, logger *zap.Logger) (Selection, error) {
	mode, ok := props.Lookup(KeyExporter)
	if !ok || len(mode) == 0 {
		return Selection{Exporter: NoopConfig{}}, nil
	}

	var exporter ExporterConfig
	switch mode {
	case ModeJaeger:
		cfg, err := resolveJaeger(props, logger)
		if err != nil {
			return Selection{}, err
		}
		exporter = cfg
	case ModeInMemory:
		exporter = InMemoryConfig{}
	case ModeLogging:
		exporter = LoggingConfig{}
	default:
		return Selection{}, &UnsupportedModeError{Key: KeyExporter, Mode: mode}
	}

	return Selection{
		Exporter:          exporter,
		ReportOnlySampled: resolveReportOnlySampled(props, logger),
	}, nil
}

func resolveJaeger(props properties.Properties, logger *zap.Logger) (JaegerConfig, error) {
	serviceName, ok := props.Lookup(KeyJaegerServiceName)
	if !ok || len(serviceName) == 0 {
		return JaegerConfig{}, &InvalidConfigError{
			Key:    KeyJaegerServiceName,
			Format: formatServiceName,
			Value:  serviceName,
			Set:    ok,
		}
	}

	addr, ok := props.Lookup(KeyJaegerAddress)
	if !ok {
		return JaegerConfig{}, &InvalidConfigError{
			Key:    KeyJaegerAddress,
			Format: formatHostPort,
		}
	}
	hostPort, err := netutil.ParseHostPort(addr)
	if err != nil {
		return JaegerConfig{}, &InvalidConfigError{
			Key:    KeyJaegerAddress,
			Format: formatHostPort,
			Value:  addr,
			Set:    true,
			Err:    err,
		}
	}

	return JaegerConfig{
		ServiceName: serviceName,
		Address:     hostPort,
		Deadline:    resolveDeadline(props, logger),
	}, nil
}

func resolveDeadline(props properties.Properties, logger *zap.Logger) time.Duration {
	value, ok := props.Lookup(KeyJaegerDeadline)
	if !ok {
		return 0
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms <= 0 || ms > math.MaxInt64/int64(time.Millisecond) {
		logger.Warn("ignore deadline",
			zap.String("key", KeyJaegerDeadline),
			zap.String("value", value),
			zap.Error(err),
		)
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func resolveReportOnlySampled(props properties.Properties, logger *zap.Logger) bool {
	value, ok := props.Lookup(KeyJaegerReportOnlySampled)
	if !ok {
		return false
	}
	reportOnlySampled, err := properties.Bool(value)
	if err != nil {
		logger.Warn("ignore reportOnlySampled",
			zap.String("key", KeyJaegerReportOnlySampled),
			zap.String("value", value),
			zap.Error(err),
		)
		return false
	}
	return reportOnlySampled
}
