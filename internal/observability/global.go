package observability

import "sync/atomic"

type loggerRef struct {
	Logger
}

var global atomic.Pointer[loggerRef]

// SetGlobalLogger sets the global logger instance. A nil logger restores
// the default.
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		global.Store(nil)
		return
	}
	global.Store(&loggerRef{logger})
}

// GetGlobalLogger returns the global logger, or a logger built from
// DefaultLogConfig when none is set.
func GetGlobalLogger() Logger {
	if ref := global.Load(); ref != nil {
		return ref.Logger
	}
	logger, err := NewLogger(DefaultLogConfig())
	if err != nil {
		return NopLogger()
	}
	return logger
}

// L returns the global logger (shorthand).
func L() Logger {
	return GetGlobalLogger()
}
