package flags

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kakao/otbridge/pkg/otbridge"
	"github.com/kakao/otbridge/pkg/util/netutil"
	"github.com/kakao/otbridge/pkg/util/properties"
)

const (
	CategoryTracer = "Tracer:"
)

var (
	// TracerExporter is a flag overriding the property ot.otel.exporter.
	TracerExporter = &cli.StringFlag{
		Name:     "exporter",
		Category: CategoryTracer,
		Usage:    fmt.Sprintf("Exporter: %s, %s, or %s. It overrides the property %s.", otbridge.ModeJaeger, otbridge.ModeInMemory, otbridge.ModeLogging, otbridge.KeyExporter),
		Action: func(_ *cli.Context, value string) error {
			switch value {
			case otbridge.ModeJaeger, otbridge.ModeInMemory, otbridge.ModeLogging:
				return nil
			default:
				return fmt.Errorf("invalid value \"%s\" for flag --exporter", value)
			}
		},
	}
	// JaegerServiceName is a flag overriding the property
	// ot.otel.exporter.jaeger.serviceName.
	JaegerServiceName = &cli.StringFlag{
		Name:     "jaeger-service-name",
		Category: CategoryTracer,
		Usage:    "Service name reported to Jaeger. It overrides the property " + otbridge.KeyJaegerServiceName + ".",
		Action: func(_ *cli.Context, value string) error {
			if len(value) == 0 {
				return fmt.Errorf("no value for flag --jaeger-service-name")
			}
			return nil
		},
	}
	// JaegerAddress is a flag overriding the property
	// ot.otel.exporter.jaeger.address.
	JaegerAddress = &cli.StringFlag{
		Name:     "jaeger-address",
		Category: CategoryTracer,
		Usage:    "Address of the Jaeger collector in the form of host:port. It overrides the property " + otbridge.KeyJaegerAddress + ".",
		Action: func(_ *cli.Context, value string) error {
			if _, err := netutil.ParseHostPort(value); err != nil {
				return fmt.Errorf("invalid value \"%s\" for flag --jaeger-address: %w", value, err)
			}
			return nil
		},
	}
	// JaegerDeadline is a flag overriding the property
	// ot.otel.exporter.jaeger.deadline.
	JaegerDeadline = &cli.DurationFlag{
		Name:     "jaeger-deadline",
		Category: CategoryTracer,
		Usage:    "Timeout for each export to Jaeger, at least 1ms. It overrides the property " + otbridge.KeyJaegerDeadline + ".",
		Action: func(_ *cli.Context, value time.Duration) error {
			if value < time.Millisecond {
				return fmt.Errorf("invalid value \"%s\" for flag --jaeger-deadline", value)
			}
			return nil
		},
	}
	// ReportOnlySampled is a flag overriding the property
	// ot.otel.exporter.jaeger.reportOnlySampled.
	ReportOnlySampled = &cli.BoolFlag{
		Name:     "report-only-sampled",
		Category: CategoryTracer,
		Usage:    "Drop spans that are recorded but not sampled. It overrides the property " + otbridge.KeyJaegerReportOnlySampled + ".",
	}
)

// TracerFlags returns all flags overriding the tracer properties.
func TracerFlags() []cli.Flag {
	return []cli.Flag{
		TracerExporter,
		JaegerServiceName,
		JaegerAddress,
		JaegerDeadline,
		ReportOnlySampled,
	}
}

// ParseTracerFlags converts the tracer flags that are set into properties.
func ParseTracerFlags(c *cli.Context) properties.Map {
	props := properties.Map{}
	if c.IsSet(TracerExporter.Name) {
		props[otbridge.KeyExporter] = c.String(TracerExporter.Name)
	}
	if c.IsSet(JaegerServiceName.Name) {
		props[otbridge.KeyJaegerServiceName] = c.String(JaegerServiceName.Name)
	}
	if c.IsSet(JaegerAddress.Name) {
		props[otbridge.KeyJaegerAddress] = c.String(JaegerAddress.Name)
	}
	if c.IsSet(JaegerDeadline.Name) {
		props[otbridge.KeyJaegerDeadline] = strconv.FormatInt(c.Duration(JaegerDeadline.Name).Milliseconds(), 10)
	}
	if c.IsSet(ReportOnlySampled.Name) {
		props[otbridge.KeyJaegerReportOnlySampled] = strconv.FormatBool(c.Bool(ReportOnlySampled.Name))
	}
	return props
}
