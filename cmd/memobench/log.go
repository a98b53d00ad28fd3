package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logEnv = "MEMOBENCH_LOG"

// newLogger builds a console logger writing to stderr
// at the named level ("error" when empty).
func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "error"
	}
	parsed, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", logEnv, err)
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		parsed,
	)
	return zap.New(core), nil
}
