package main

import (
	"github.com/lanedefense/sim/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// terminalLogFile keeps log output off the screen tcell is drawing on.
const terminalLogFile = "lanedef.log"

func newLogger(cfg config.LoggingConfig, terminal bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	out := cfg.File
	if out == "" && terminal {
		out = terminalLogFile
	}
	if out != "" {
		zapCfg.OutputPaths = []string{out}
		zapCfg.ErrorOutputPaths = []string{out}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}
