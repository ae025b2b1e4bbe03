package log

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kakao/otbridge/pkg/util/fputil"
)

// Level is a logging priority.
type Level = zapcore.Level

const (
	defaultLogLevel = zapcore.InfoLevel

	defaultSamplingTick = time.Second

	defaultMaxSizeMB  = 100 // 100MB
	defaultMaxAgeDays = 0   // retain all
	defaultMaxBackups = 0   // retain all
	defaultLogDirMode = os.FileMode(0755)
)

type config struct {
	disableLogToStderr bool

	humanFriendly bool
	level         Level
	zapOpts       []zap.Option
	zapSampling   *zap.SamplingConfig
	samplingTick  time.Duration

	// log rotate
	path       string
	maxSizeMB  int
	maxAgeDays int
	maxBackups int
	compress   bool
	localTime  bool
	logDirMode os.FileMode
}

func newConfig(opts []Option) (cfg config, err error) {
	cfg = config{
		level:      defaultLogLevel,
		maxSizeMB:  defaultMaxSizeMB,
		maxAgeDays: defaultMaxAgeDays,
		maxBackups: defaultMaxBackups,
		logDirMode: defaultLogDirMode,

		samplingTick: defaultSamplingTick,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	err = cfg.validate()
	return cfg, err
}

func (c config) validate() error {
	if c.disableLogToStderr && len(c.path) == 0 {
		return errors.New("logger: no output")
	}
	if c.maxSizeMB <= 0 {
		return errors.New("logger: non-positive max size")
	}
	if c.maxAgeDays < 0 || c.maxBackups < 0 {
		return errors.New("logger: negative retention")
	}
	if c.zapSampling != nil && c.samplingTick <= 0 {
		return errors.New("logger: non-positive sampling tick")
	}
	if len(c.path) > 0 {
		if c.path[len(c.path)-1] == '/' {
			return errors.New("logger: invalid file path")
		}
		if err := os.MkdirAll(filepath.Dir(c.path), c.logDirMode); err != nil {
			return errors.WithStack(err)
		}
		if err := fputil.IsWritableDir(filepath.Dir(c.path)); err != nil {
			return err
		}
	}
	return nil
}

type Option func(*config)

// WithoutLogToStderr stops writing logs to the stderr. A file path must be
// given by WithPath.
func WithoutLogToStderr() Option {
	return func(c *config) {
		c.disableLogToStderr = true
	}
}

// WithPath writes logs to the file, which is rotated by size.
func WithPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

func WithMaxSizeMB(maxSizeMB int) Option {
	return func(c *config) {
		c.maxSizeMB = maxSizeMB
	}
}

func WithAgeDays(maxAgeDays int) Option {
	return func(c *config) {
		c.maxAgeDays = maxAgeDays
	}
}

func WithMaxBackups(maxBackups int) Option {
	return func(c *config) {
		c.maxBackups = maxBackups
	}
}

func WithLocalTime() Option {
	return func(c *config) {
		c.localTime = true
	}
}

func WithCompression() Option {
	return func(c *config) {
		c.compress = true
	}
}

func WithLogDirMode(mode os.FileMode) Option {
	return func(c *config) {
		c.logDirMode = mode
	}
}

// WithHumanFriendly uses the console encoder instead of the JSON encoder.
func WithHumanFriendly() Option {
	return func(c *config) {
		c.humanFriendly = true
	}
}

func WithLogLevel(level Level) Option {
	return func(c *config) {
		c.level = level
	}
}

func WithZapLoggerOptions(opts ...zap.Option) Option {
	return func(c *config) {
		c.zapOpts = opts
	}
}

func WithZapSampling(zapSampling *zap.SamplingConfig) Option {
	return func(c *config) {
		c.zapSampling = zapSampling
	}
}

// WithZapSamplingTick sets the interval over which WithZapSampling counts
// entries. It is one second by default.
func WithZapSamplingTick(tick time.Duration) Option {
	return func(c *config) {
		c.samplingTick = tick
	}
}
