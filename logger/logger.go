package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the shared sugared logger. Replaced by Init at startup; the default
// keeps tests and helpers working without explicit setup.
var L = zap.Must(zap.NewProduction()).Sugar()

// Init configures the logger from APP_ENV (development enables console
// encoding and debug level).
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return
	}
	L = l.Sugar()
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = L.Sync()
}
