// Package logging builds the zap.Logger handle threaded through
// ProcessingService, CheckEngine, and the structure-tree walker as a plain
// field (SPEC_FULL §A.1), grounded on cmd/nerd/main.go's
// zap.NewProductionConfig() wiring.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects the logger's verbosity, mirroring the CLI flag surface of
// spec §6 (-q, -v, -vv/--debug).
type Level int

const (
	LevelNormal Level = iota
	LevelVerbose
	LevelDebug
	LevelQuiet
)

// New builds a production zap.Logger at the given level. LevelDebug
// downgrades to zapcore.DebugLevel; LevelQuiet raises the level to Error so
// only failures surface, matching spec §7's quiet-mode contract.
func New(level Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	switch level {
	case LevelDebug:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case LevelVerbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case LevelQuiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return config.Build()
}
