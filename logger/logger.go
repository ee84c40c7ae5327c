package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the process-wide sugared logger. It defaults to a no-op logger so that
// packages can log safely before Init runs (e.g. in tests).
var L = zap.NewNop().Sugar()

// Init configures the global logger. Production uses JSON output, everything
// else gets the human-readable development encoder.
func Init() error {
	var (
		log *zap.Logger
		err error
	)

	if os.Getenv("ENV") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	L = log.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = L.Sync()
}
