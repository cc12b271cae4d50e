package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage reports a fatal command line error.
	ApplicationExecutionFailedMessage = "application execution failed"
)

// NewApplicationLogger builds the console logger used for diagnostics emitted
// while a document is generated. Messages go to stderr so stdout stays clean
// for --no-save output; timestamps and callers add nothing to a short-lived
// CLI run and are omitted.
func NewApplicationLogger() (*zap.Logger, error) {
	encoderConfiguration := zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfiguration),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(consoleCore), nil
}
