package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func ExampleNew() {
	logger, err := New(WithLogLevel(zapcore.DebugLevel))
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("this is log", zap.String("example", "first"))
}

func TestNew_InvalidOptions(t *testing.T) {
	tcs := []struct {
		name string
		opts []Option
	}{
		{
			name: "NoOutput",
			opts: []Option{WithoutLogToStderr()},
		},
		{
			name: "DirectoryAsPath",
			opts: []Option{WithPath(t.TempDir() + "/")},
		},
		{
			name: "ZeroSamplingTick",
			opts: []Option{
				WithZapSampling(&zap.SamplingConfig{Initial: 1, Thereafter: 1}),
				WithZapSamplingTick(0),
			},
		},
		{
			name: "ZeroMaxSize",
			opts: []Option{WithMaxSizeMB(0)},
		},
		{
			name: "NegativeMaxBackups",
			opts: []Option{WithMaxBackups(-1)},
		},
		{
			name: "NegativeMaxAge",
			opts: []Option{WithAgeDays(-1)},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opts...)
			require.Error(t, err)
		})
	}
}

func TestNew_File(t *testing.T) {
	tcs := []struct {
		name          string
		humanFriendly bool
		check         func(t *testing.T, line string)
	}{
		{
			name: "JSON",
			check: func(t *testing.T, line string) {
				assert.Contains(t, line, `"msg":"hello"`)
				assert.Contains(t, line, `"key":"value"`)
				assert.NotContains(t, line, "filtered")
			},
		},
		{
			name:          "Console",
			humanFriendly: true,
			check: func(t *testing.T, line string) {
				assert.Contains(t, line, "hello")
				assert.NotContains(t, line, `"msg"`)
			},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "otbridge.log")
			opts := []Option{
				WithoutLogToStderr(),
				WithPath(path),
				WithLogLevel(zapcore.InfoLevel),
				WithCompression(),
				WithLocalTime(),
			}
			if tc.humanFriendly {
				opts = append(opts, WithHumanFriendly())
			}

			logger, err := New(opts...)
			require.NoError(t, err)
			logger.Debug("filtered")
			logger.Info("hello", zap.String("key", "value"))
			_ = logger.Sync()

			buf, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
			require.Len(t, lines, 1)
			tc.check(t, lines[0])
		})
	}
}

func TestNew_Sampling(t *testing.T) {
	tcs := []struct {
		name string
		opts []Option
	}{
		{
			name: "DefaultTick",
			opts: nil,
		},
		{
			name: "HourTick",
			opts: []Option{WithZapSamplingTick(time.Hour)},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sampled.log")
			opts := append([]Option{
				WithoutLogToStderr(),
				WithPath(path),
				WithZapSampling(&zap.SamplingConfig{Initial: 1, Thereafter: 1000}),
			}, tc.opts...)
			logger, err := New(opts...)
			require.NoError(t, err)

			for i := 0; i < 10; i++ {
				logger.Info("repeated")
			}
			_ = logger.Sync()

			buf, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, 1, strings.Count(string(buf), "repeated"))
		})
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction(
			"gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun",
		),
		goleak.IgnoreTopFunction(
			"gopkg.in/natefinch/lumberjack.v2.(*Logger).millRun",
		),
	)
}
