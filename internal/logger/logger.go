// Package logger builds the zap logger shared by the client and the sandbox server.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the process logger. Log is a no-op logger until Init succeeds.
type Logger struct {
	Log     *zap.Logger
	outputs []string
}

// New returns a Logger writing to the given output paths once initialized.
// With no paths it writes to stderr.
func New(outputs ...string) *Logger {
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	return &Logger{Log: zap.NewNop(), outputs: outputs}
}

// Init builds the logger at the given level ("debug", "info", "warn", "error").
// The level "off" keeps the no-op logger.
func (l *Logger) Init(level string) error {
	if level == "off" {
		l.Log = zap.NewNop()
		return nil
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = l.outputs
	cfg.ErrorOutputPaths = l.outputs
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = zl
	return nil
}
