package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newEncoder returns a JSON encoder for FormatJSON and a console encoder otherwise.
func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if format == FormatJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// newCore builds a zapcore.Core targeting w.
func newCore(level zapcore.Level, format string, w zapcore.WriteSyncer) zapcore.Core {
	return zapcore.NewCore(newEncoder(format), zapcore.Lock(w), zap.NewAtomicLevelAt(level))
}

// New constructs a sugared zap logger writing to stdout.
func New(levelStr, format string) *Logger {
	return newLogger(levelStr, format, zapcore.AddSync(os.Stdout))
}

func newLogger(levelStr, format string, w zapcore.WriteSyncer) *Logger {
	core := newCore(toZapLevel(levelStr), format, w)
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}
