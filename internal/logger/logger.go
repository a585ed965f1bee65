package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger shared by all Puzzle3D packages. It defaults
// to a no-op logger so library consumers and tests that never call Init do not
// need to guard their log calls.
var Log = zap.NewNop()

// Init builds the default development logger at Info level.
func Init() {
	InitWithLevel(zapcore.InfoLevel)
}

// InitWithLevel builds the logger at an explicit level.
func InitWithLevel(level zapcore.Level) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	log, err := config.Build()
	if err != nil {
		panic(err)
	}
	Log = log
}

// Or returns log if it is non-nil and the shared logger otherwise. Components
// take an optional injected logger and resolve it through this at call sites.
func Or(log *zap.Logger) *zap.Logger {
	if log != nil {
		return log
	}
	return Log
}
