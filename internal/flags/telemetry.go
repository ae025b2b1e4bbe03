package flags

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kakao/otbridge/pkg/util/telemetry"
)

const (
	CategoryTelemetry = "Telemetry:"

	TelemetryExporterNOOP   = "noop"
	TelemetryExporterStdout = "stdout"
	TelemetryExporterOTLP   = "otlp"

	DefaultTelemetryOTLPEndpoint = "localhost:4317"

	DefaultTelemetryStopTimeout = 3 * time.Second
)

var (
	// TelemetryExporter is a flag choosing the exporter of the metrics, such
	// as the number of spans handled by the tracer.
	TelemetryExporter = &cli.StringFlag{
		Name:     "telemetry-exporter",
		Category: CategoryTelemetry,
		Usage:    fmt.Sprintf("Metric exporter type: %s, %s or %s.", TelemetryExporterNOOP, TelemetryExporterStdout, TelemetryExporterOTLP),
		EnvVars:  []string{"TELEMETRY_EXPORTER"},
		Value:    TelemetryExporterNOOP,
		Action: func(_ *cli.Context, value string) error {
			switch strings.ToLower(value) {
			case TelemetryExporterNOOP, TelemetryExporterStdout, TelemetryExporterOTLP:
				return nil
			default:
				return fmt.Errorf("invalid value \"%s\" for flag --telemetry-exporter", value)
			}
		},
	}
	TelemetryOTLPEndpoint = &cli.StringFlag{
		Name:     "telemetry-otlp-endpoint",
		Category: CategoryTelemetry,
		Usage:    "Endpoint for OTLP metric exporter.",
		EnvVars:  []string{"TELEMETRY_OTLP_ENDPOINT"},
		Value:    DefaultTelemetryOTLPEndpoint,
		Action: func(c *cli.Context, value string) error {
			if c.String(TelemetryExporter.Name) != TelemetryExporterOTLP || value != "" {
				return nil
			}
			return errors.New("no value for flag --telemetry-otlp-endpoint")
		},
	}
	TelemetryOTLPInsecure = &cli.BoolFlag{
		Name:     "telemetry-otlp-insecure",
		Category: CategoryTelemetry,
		Usage:    "Disable gRPC client transport security for OTLP metric exporter.",
		EnvVars:  []string{"TELEMETRY_OTLP_INSECURE"},
	}
	TelemetryExporterStopTimeout = &cli.DurationFlag{
		Name:     "telemetry-exporter-stop-timeout",
		Category: CategoryTelemetry,
		Usage:    "Timeout for flushing and stopping the metric exporter.",
		EnvVars:  []string{"TELEMETRY_EXPORTER_STOP_TIMEOUT"},
		Value:    DefaultTelemetryStopTimeout,
	}
	TelemetryExportInterval = &cli.DurationFlag{
		Name:     "telemetry-export-interval",
		Category: CategoryTelemetry,
		Usage:    "Interval between exports of the metrics. If not set, the default of the periodic reader is used.",
		EnvVars:  []string{"TELEMETRY_EXPORT_INTERVAL"},
		Action: func(_ *cli.Context, value time.Duration) error {
			if value <= 0 {
				return fmt.Errorf("invalid value \"%s\" for flag --telemetry-export-interval", value)
			}
			return nil
		},
	}
	TelemetryHost = &cli.BoolFlag{
		Name:     "telemetry-host",
		Category: CategoryTelemetry,
		Usage:    "Export host metrics.",
		EnvVars:  []string{"TELEMETRY_HOST"},
	}
	TelemetryRuntime = &cli.BoolFlag{
		Name:     "telemetry-runtime",
		Category: CategoryTelemetry,
		Usage:    "Export runtime metrics.",
		EnvVars:  []string{"TELEMETRY_RUNTIME"},
	}
)

// TelemetryFlags returns all flags configuring the metrics.
func TelemetryFlags() []cli.Flag {
	return []cli.Flag{
		TelemetryExporter,
		TelemetryOTLPEndpoint,
		TelemetryOTLPInsecure,
		TelemetryExporterStopTimeout,
		TelemetryExportInterval,
		TelemetryHost,
		TelemetryRuntime,
	}
}

// ParseTelemetryFlags returns options for telemetry.NewMeterProvider. The
// stdout exporter writes to the writer of the application.
func ParseTelemetryFlags(ctx context.Context, c *cli.Context, serviceName string) (opts []telemetry.MeterProviderOption, err error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}
	opts = append(opts, telemetry.WithResource(res))

	var exporter metricsdk.Exporter

	switch strings.ToLower(c.String(TelemetryExporter.Name)) {
	case TelemetryExporterStdout:
		exporter, err = telemetry.NewStdoutExporter(stdoutmetric.WithWriter(c.App.Writer))
	case TelemetryExporterOTLP:
		var otlpOpts []otlpmetricgrpc.Option
		if c.Bool(TelemetryOTLPInsecure.Name) {
			otlpOpts = append(otlpOpts, otlpmetricgrpc.WithInsecure())
		}
		otlpOpts = append(otlpOpts, otlpmetricgrpc.WithEndpoint(c.String(TelemetryOTLPEndpoint.Name)))
		exporter, err = telemetry.NewOTLPExporter(ctx, otlpOpts...)
	case TelemetryExporterNOOP:
		exporter = nil
	}
	if err != nil {
		return nil, err
	}

	opts = append(opts, telemetry.WithExporter(exporter))

	if c.IsSet(TelemetryExportInterval.Name) {
		opts = append(opts, telemetry.WithInterval(c.Duration(TelemetryExportInterval.Name)))
	}

	if c.Bool(TelemetryHost.Name) {
		opts = append(opts, telemetry.WithHostInstrumentation())
	}
	if c.Bool(TelemetryRuntime.Name) {
		opts = append(opts, telemetry.WithRuntimeInstrumentation())
	}

	return opts, nil
}
