package logger

import corelogger "github.com/kilianp07/parcelsim/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards every record.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component. The output format is chosen
// from APP_ENV and the minimum level from LOG_LEVEL.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// NewVerbose is New with the minimum level forced to debug when verbose is
// set, so per-decision records are written regardless of LOG_LEVEL.
func NewVerbose(component string, verbose bool) Logger {
	if !verbose {
		return New(component)
	}
	return NewZerologLoggerWithWriter(stderr(), component, "debug")
}
