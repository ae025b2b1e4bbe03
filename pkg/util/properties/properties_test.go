package properties

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMap(t *testing.T) {
	m := Map{
		"ot.otel.exporter": "jaeger",
		"empty":            "",
	}

	value, ok := m.Lookup("ot.otel.exporter")
	assert.True(t, ok)
	assert.Equal(t, "jaeger", value)

	value, ok = m.Lookup("empty")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = m.Lookup("absent")
	assert.False(t, ok)

	_, ok = Map(nil).Lookup("absent")
	assert.False(t, ok)

	assert.Equal(t, []string{"empty", "ot.otel.exporter"}, m.Keys())
}

func TestChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := NewMockProperties(ctrl)
	fallback.EXPECT().Lookup("b").Return("fallback", true)
	fallback.EXPECT().Lookup("c").Return("", false)

	c := Chain{Map{"a": "first"}, nil, Map{"a": "second", "b": ""}, fallback}

	value, ok := c.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	// An empty value is still a hit.
	value, ok = c.Lookup("b")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = c.Lookup("c")
	assert.False(t, ok)

	_, ok = Chain{}.Lookup("a")
	assert.False(t, ok)

	value, ok = Chain{Map{}, fallback}.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "fallback", value)
}

func TestEnvKey(t *testing.T) {
	tcs := []struct {
		key  string
		want string
	}{
		{key: "ot.otel.exporter", want: "OT_OTEL_EXPORTER"},
		{key: "ot.otel.exporter.jaeger.address", want: "OT_OTEL_EXPORTER_JAEGER_ADDRESS"},
		{key: "ot.otel.exporter.jaeger.serviceName", want: "OT_OTEL_EXPORTER_JAEGER_SERVICENAME"},
		{key: "log-level", want: "LOG_LEVEL"},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, EnvKey(tc.key))
	}
}

func TestEnviron(t *testing.T) {
	t.Setenv("OT_OTEL_EXPORTER_JAEGER_ADDRESS", "localhost:14250")
	t.Setenv("OT_OTEL_EXPORTER", "")

	p := Default()

	value, ok := p.Lookup("ot.otel.exporter.jaeger.address")
	assert.True(t, ok)
	assert.Equal(t, "localhost:14250", value)

	value, ok = p.Lookup("ot.otel.exporter")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = p.Lookup("ot.otel.exporter.jaeger.deadline")
	assert.False(t, ok)
}

func TestParseAssignments(t *testing.T) {
	m, err := ParseAssignments([]string{
		"ot.otel.exporter=jaeger",
		"ot.otel.exporter.jaeger.address=localhost:14250",
		"ot.otel.exporter.jaeger.serviceName=",
		"weird=a=b",
		"ot.otel.exporter=inmemory",
	})
	require.NoError(t, err)
	assert.Equal(t, Map{
		"ot.otel.exporter":                    "inmemory",
		"ot.otel.exporter.jaeger.address":     "localhost:14250",
		"ot.otel.exporter.jaeger.serviceName": "",
		"weird":                               "a=b",
	}, m)

	_, err = ParseAssignments([]string{"novalue"})
	assert.Error(t, err)

	_, err = ParseAssignments([]string{" =value"})
	assert.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	tcs := []struct {
		name    string
		in      string
		want    Map
		wantErr bool
	}{
		{
			name: "Empty",
			in:   "",
			want: Map{},
		},
		{
			name: "Flat",
			in: `
ot.otel.exporter: jaeger
ot.otel.exporter.jaeger.address: localhost:14250
ot.otel.exporter.jaeger.deadline: 0100
`,
			want: Map{
				"ot.otel.exporter":                 "jaeger",
				"ot.otel.exporter.jaeger.address":  "localhost:14250",
				"ot.otel.exporter.jaeger.deadline": "0100",
			},
		},
		{
			name: "Nested",
			in: `
ot:
  otel:
    exporter: jaeger
    exporter.jaeger:
      serviceName: checkout
      reportOnlySampled: yes
      address:
`,
			want: Map{
				"ot.otel.exporter":                          "jaeger",
				"ot.otel.exporter.jaeger.serviceName":       "checkout",
				"ot.otel.exporter.jaeger.reportOnlySampled": "yes",
				"ot.otel.exporter.jaeger.address":           "",
			},
		},
		{
			name: "Alias",
			in: `
common: &common
  serviceName: checkout
ot.otel.exporter.jaeger: *common
`,
			want: Map{
				"common.serviceName":                  "checkout",
				"ot.otel.exporter.jaeger.serviceName": "checkout",
			},
		},
		{
			name: "CollidingKeys",
			in: `
ot.otel.exporter: jaeger
ot:
  otel:
    exporter: logging
`,
			wantErr: true,
		},
		{
			name:    "Sequence",
			in:      "ot.otel.exporter: [jaeger, logging]",
			wantErr: true,
		},
		{
			name:    "NotMapping",
			in:      "jaeger",
			wantErr: true,
		},
		{
			name:    "Malformed",
			in:      "a: [",
			wantErr: true,
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tc.in))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ot.otel.exporter: logging\n"), 0600))

	m, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Map{"ot.otel.exporter": "logging"}, m)

	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBool(t *testing.T) {
	tcs := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "true", want: true},
		{in: "TRUE", want: true},
		{in: "yes", want: true},
		{in: " Enabled ", want: true},
		{in: "false", want: false},
		{in: "No", want: false},
		{in: "disabled", want: false},
		{in: "", wantErr: true},
		{in: "1", wantErr: true},
		{in: "maybe", wantErr: true},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			got, err := Bool(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
