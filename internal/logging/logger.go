package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so the rest of the codebase depends on this
// package rather than go.uber.org/zap directly.
type Logger struct {
	*zap.Logger
}

// Config holds logging configuration.
type Config struct {
	Level       string
	Format      string
	Development bool
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Development: false}
}

func DevelopmentConfig() Config {
	return Config{Level: "debug", Format: "console", Development: true}
}

// New builds a Logger from the given configuration.
func New(config Config) (*Logger, error) {
	level, err := parseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      config.Development,
		Encoding:         config.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

// NewFromEnv builds a Logger from LOG_LEVEL / LOG_FORMAT / LOG_DEV.
func NewFromEnv() (*Logger, error) {
	config := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = format
	}
	if os.Getenv("LOG_DEV") == "true" {
		config = DevelopmentConfig()
		if level := os.Getenv("LOG_LEVEL"); level != "" {
			config.Level = level
		}
	}
	return New(config)
}

func NewNoOp() *Logger {
	return &Logger{zap.NewNop()}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, nil
	}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l.Logger.With(fields...)}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l.Logger.Named(name)}
}

var global = NewNoOp()

func SetGlobal(l *Logger) { global = l }
func Global() *Logger     { return global }

// RedactSessionKey returns a placeholder instead of the real session key.
// Session keys are long-lived bearer credentials (spec.md §9 Open Question
// 3) and must never appear in logs.
func RedactSessionKey(string) string { return "<redacted>" }
