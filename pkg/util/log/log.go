// Package log builds the process-wide zap logger. Logs go to the stderr, to
// a size-rotated file, or to both.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap logger. It returns an error if neither the stderr nor a
// file is chosen, or if the directory of the log file is not writable.
func New(opts ...Option) (*zap.Logger, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var syncers []zapcore.WriteSyncer
	if !cfg.disableLogToStderr {
		syncers = append(syncers, zapcore.Lock(zapcore.AddSync(os.Stderr)))
	}
	if len(cfg.path) > 0 {
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.path,
			MaxSize:    cfg.maxSizeMB,
			MaxAge:     cfg.maxAgeDays,
			MaxBackups: cfg.maxBackups,
			LocalTime:  cfg.localTime,
			Compress:   cfg.compress,
		}))
	}

	return zap.New(newCore(cfg, zap.CombineWriteSyncers(syncers...)), zapOptions(cfg)...), nil
}

func newCore(cfg config, ws zapcore.WriteSyncer) zapcore.Core {
	var encoder zapcore.Encoder
	if cfg.humanFriendly {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(cfg.level))
}

func zapOptions(cfg config) []zap.Option {
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)}
	if cfg.humanFriendly {
		opts = append(opts, zap.Development())
	}
	if s := cfg.zapSampling; s != nil {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, cfg.samplingTick, s.Initial, s.Thereafter)
		}))
	}
	return append(opts, cfg.zapOpts...)
}
