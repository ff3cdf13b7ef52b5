package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// MinterLogger returns a child logger with generator-context fields.
func MinterLogger(base *zap.Logger, mode string, machineID byte) *zap.Logger {
	return base.With(
		zap.String("mode", mode),
		zap.Uint8("machine_id", machineID),
	)
}
