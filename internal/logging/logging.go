// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "LOG_LEVEL"

// DefaultLevel is used when LevelEnv is unset.
const DefaultLevel = "INFO"

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		TimeKey:        "T",
		NameKey:        "N",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Level returns the level named by LevelEnv, or DefaultLevel.
func Level() (zap.AtomicLevel, error) {
	name, ok := os.LookupEnv(LevelEnv)
	if !ok || name == "" {
		name = DefaultLevel
	}
	level, err := zap.ParseAtomicLevel(name)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel), fmt.Errorf("invalid %s %q: %w", LevelEnv, name, err)
	}
	return level, nil
}

// New builds a console logger writing to w at the level from the
// environment, with colored levels when color is set. An invalid level falls
// back to INFO and is reported as a warning through the returned logger.
func New(w io.Writer, color bool) *zap.SugaredLogger {
	level, levelErr := Level()
	sugar := NewWithWriter(w, level, color)
	if levelErr != nil {
		sugar.Warnw("falling back to INFO log level", "error", levelErr)
	}
	return sugar
}

// NewWithWriter builds a console logger writing to w at the given level.
func NewWithWriter(w io.Writer, level zapcore.LevelEnabler, color bool) *zap.SugaredLogger {
	config := encoderConfig()
	if color {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).Sugar()
}
