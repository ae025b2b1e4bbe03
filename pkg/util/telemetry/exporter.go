package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
)

// NewStdoutExporter returns an exporter that writes metrics as JSON. It
// writes to the stdout unless stdoutmetric.WithWriter is given.
func NewStdoutExporter(opts ...stdoutmetric.Option) (metricsdk.Exporter, error) {
	exp, err := stdoutmetric.New(opts...)
	return exp, errors.WithStack(err)
}

// NewOTLPExporter returns an exporter that sends metrics to an OTLP collector
// over gRPC.
func NewOTLPExporter(ctx context.Context, opts ...otlpmetricgrpc.Option) (metricsdk.Exporter, error) {
	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return exp, nil
}
