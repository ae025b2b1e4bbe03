package otbridge

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kakao/otbridge/pkg/util/netutil"
	"github.com/kakao/otbridge/pkg/util/properties"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func jaegerProps(kvs ...string) properties.Map {
	props := properties.Map{
		KeyExporter:          ModeJaeger,
		KeyJaegerServiceName: "checkout",
		KeyJaegerAddress:     "localhost:14250",
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		props[kvs[i]] = kvs[i+1]
	}
	return props
}

func TestResolve(t *testing.T) {
	tcs := []struct {
		name  string
		props properties.Map
		want  Selection
	}{
		{
			name:  "ModeAbsent",
			props: properties.Map{},
			want:  Selection{Exporter: NoopConfig{}},
		},
		{
			name:  "ModeEmpty",
			props: properties.Map{KeyExporter: "", KeyJaegerReportOnlySampled: "true"},
			want:  Selection{Exporter: NoopConfig{}},
		},
		{
			name:  "InMemory",
			props: properties.Map{KeyExporter: ModeInMemory},
			want:  Selection{Exporter: InMemoryConfig{}},
		},
		{
			name:  "LoggingReportOnlySampled",
			props: properties.Map{KeyExporter: ModeLogging, KeyJaegerReportOnlySampled: "Yes"},
			want:  Selection{Exporter: LoggingConfig{}, ReportOnlySampled: true},
		},
		{
			name:  "Jaeger",
			props: jaegerProps(),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "localhost", Port: 14250},
			}},
		},
		{
			name:  "JaegerMinPort",
			props: jaegerProps(KeyJaegerAddress, "collector:1"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "collector", Port: 1},
			}},
		},
		{
			name:  "JaegerMaxPort",
			props: jaegerProps(KeyJaegerAddress, "collector:65535"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "collector", Port: 65535},
			}},
		},
		{
			name:  "JaegerDeadline",
			props: jaegerProps(KeyJaegerDeadline, "1500"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "localhost", Port: 14250},
				Deadline:    1500 * time.Millisecond,
			}},
		},
		{
			name:  "JaegerDeadlineNotANumber",
			props: jaegerProps(KeyJaegerDeadline, "not-a-number"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "localhost", Port: 14250},
			}},
		},
		{
			name:  "JaegerDeadlineNegative",
			props: jaegerProps(KeyJaegerDeadline, "-1"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "localhost", Port: 14250},
			}},
		},
		{
			name:  "JaegerReportOnlySampled",
			props: jaegerProps(KeyJaegerReportOnlySampled, "enabled"),
			want: Selection{
				Exporter: JaegerConfig{
					ServiceName: "checkout",
					Address:     netutil.HostPort{Host: "localhost", Port: 14250},
				},
				ReportOnlySampled: true,
			},
		},
		{
			name:  "JaegerReportOnlySampledUnrecognised",
			props: jaegerProps(KeyJaegerReportOnlySampled, "maybe"),
			want: Selection{Exporter: JaegerConfig{
				ServiceName: "checkout",
				Address:     netutil.HostPort{Host: "localhost", Port: 14250},
			}},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.props, zap.NewNop())
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_InvalidConfig(t *testing.T) {
	tcs := []struct {
		name    string
		props   properties.Map
		wantKey string
		wantMsg string
	}{
		{
			name:    "ServiceNameAbsent",
			props:   properties.Map{KeyExporter: ModeJaeger, KeyJaegerAddress: "localhost:14250"},
			wantKey: KeyJaegerServiceName,
			wantMsg: "ot.otel.exporter.jaeger.serviceName=<SERVICE_NAME> is invalid: <unset>",
		},
		{
			name:    "ServiceNameEmpty",
			props:   jaegerProps(KeyJaegerServiceName, ""),
			wantKey: KeyJaegerServiceName,
			wantMsg: "ot.otel.exporter.jaeger.serviceName=<SERVICE_NAME> is invalid: ",
		},
		{
			name:    "AddressAbsent",
			props:   properties.Map{KeyExporter: ModeJaeger, KeyJaegerServiceName: "checkout"},
			wantKey: KeyJaegerAddress,
			wantMsg: "ot.otel.exporter.jaeger.address=<HOST:PORT> is invalid: <unset>",
		},
		{
			name:    "AddressNotNumericPort",
			props:   jaegerProps(KeyJaegerAddress, "localhost:abc"),
			wantKey: KeyJaegerAddress,
			wantMsg: "ot.otel.exporter.jaeger.address=<HOST:PORT> is invalid: localhost:abc",
		},
		{
			name:    "AddressNoSeparator",
			props:   jaegerProps(KeyJaegerAddress, "localhost"),
			wantKey: KeyJaegerAddress,
			wantMsg: "is invalid: localhost",
		},
		{
			name:    "AddressEmptyHost",
			props:   jaegerProps(KeyJaegerAddress, ":14250"),
			wantKey: KeyJaegerAddress,
			wantMsg: "is invalid: :14250",
		},
		{
			name:    "AddressPortZero",
			props:   jaegerProps(KeyJaegerAddress, "localhost:0"),
			wantKey: KeyJaegerAddress,
			wantMsg: "is invalid: localhost:0",
		},
		{
			name:    "AddressPortTooLarge",
			props:   jaegerProps(KeyJaegerAddress, "localhost:65536"),
			wantKey: KeyJaegerAddress,
			wantMsg: "is invalid: localhost:65536",
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.props, zap.NewNop())
			require.Error(t, err)

			var cfgErr *InvalidConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.wantKey, cfgErr.Key)
			assert.Contains(t, err.Error(), tc.wantKey)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestResolve_UnsupportedMode(t *testing.T) {
	for _, mode := range []string{"banana", "Jaeger", "INMEMORY", " logging"} {
		_, err := Resolve(properties.Map{KeyExporter: mode}, zap.NewNop())
		require.Error(t, err)

		var modeErr *UnsupportedModeError
		require.True(t, errors.As(err, &modeErr))
		assert.Equal(t, KeyExporter, modeErr.Key)
		assert.Equal(t, mode, modeErr.Mode)
		assert.Equal(t, "unsupported ot.otel.exporter="+mode, err.Error())
	}
}

func TestResolve_Warnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	props := jaegerProps(
		KeyJaegerDeadline, "not-a-number",
		KeyJaegerReportOnlySampled, "maybe",
	)

	sel, err := Resolve(props, zap.New(core))
	require.NoError(t, err)
	require.Zero(t, sel.Exporter.(JaegerConfig).Deadline)
	require.False(t, sel.ReportOnlySampled)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("key", KeyJaegerDeadline)).Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("key", KeyJaegerReportOnlySampled)).Len())
}

func TestInvalidConfigError_Unwrap(t *testing.T) {
	_, err := Resolve(jaegerProps(KeyJaegerAddress, "localhost:abc"), zap.NewNop())
	require.Error(t, err)
	require.NotNil(t, errors.Unwrap(err))
}

func TestSelection_String(t *testing.T) {
	sel := Selection{
		Exporter: JaegerConfig{
			ServiceName: "checkout",
			Address:     netutil.HostPort{Host: "localhost", Port: 14250},
			Deadline:    time.Second,
		},
		ReportOnlySampled: true,
	}
	assert.Equal(t, "exporter=jaeger(serviceName=checkout, address=localhost:14250, deadline=1s) reportOnlySampled=true", sel.String())
	assert.Equal(t, "exporter=noop reportOnlySampled=false", Selection{Exporter: NoopConfig{}}.String())
}
