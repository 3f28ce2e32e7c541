package log

import (
	"os"

	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// EnsureLogger replaces the no-op logger. APP_ENV=production selects the JSON
// production config, anything else the development one.
func EnsureLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		Logger = zap.NewNop()
	}
}

func Sync() {
	_ = Logger.Sync()
}
