package main

import (
	"fmt"

	"github.com/KevinKickass/hwdefs/internal/config"
	"go.uber.org/zap"
)

func defaultLogConfig() config.LogConfig {
	return config.LogConfig{Level: "warn", Encoding: "console"}
}

// newLogger builds a zap logger writing to stderr; stdout carries the
// generated source.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	switch cfg.Encoding {
	case "", "console":
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
		zcfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log encoding %q", cfg.Encoding)
	}

	return zcfg.Build()
}
