package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ServiceName = "tutorlink"

// New builds the JSON logger used by the server. An unknown level falls back
// to info. Sampling is off so every failed submit is logged.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
