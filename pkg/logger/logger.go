package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

func init() {
	// Default to the production logger; main may reinitialize.
	if err := InitializeLogger(false); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
	}
}

// InitializeLogger sets up the global zap logger. isDevelopment switches to
// console-friendly output; production logs JSON. LOG_LEVEL overrides the
// default Info level.
func InitializeLogger(isDevelopment bool) error {
	var config zap.Config
	if isDevelopment {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Encoding = "json"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.MessageKey = "message"
	}

	config.Level.SetLevel(zap.InfoLevel)
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		var level zapcore.Level
		if err := level.Set(logLevel); err == nil {
			config.Level.SetLevel(level)
		}
	}

	var err error
	log, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		log = zap.NewNop()
		return err
	}

	zap.RedirectStdLog(log)
	return nil
}

// L returns the global logger instance.
func L() *zap.Logger {
	return log
}

// Sync flushes any buffered log entries.
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}
