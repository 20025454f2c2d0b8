package config

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggingConfig struct {
	// none, normal or debug
	Level string `toml:"level"`
}

var levels = map[string]zapcore.Level{
	"none":   zapcore.InvalidLevel,
	"normal": zapcore.InfoLevel,
	"debug":  zapcore.DebugLevel,
}

// Logger returns our standard logger: console output, errors on stderr and
// everything else on stdout.
func (conf LoggingConfig) Logger() *zap.Logger {
	return conf.build(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

// LoggerTo is Logger with explicit destinations for regular and error output.
func (conf LoggingConfig) LoggerTo(out, errOut io.Writer) *zap.Logger {
	return conf.build(zapcore.AddSync(out), zapcore.AddSync(errOut))
}

func (conf LoggingConfig) build(out, errOut zapcore.WriteSyncer) *zap.Logger {
	lvl, ok := levels[conf.Level]
	if !ok || lvl == zapcore.InvalidLevel {
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return lvl <= l && l < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, errOut, highPriority),
		zapcore.NewCore(enc, out, lowPriority),
	)
	return zap.New(core).Named("stagelayout")
}
