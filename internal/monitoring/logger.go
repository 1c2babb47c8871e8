package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger used by the library packages.
// It defaults to log.Printf but may be replaced by SetLogger so tests or
// callers can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// debug gates Debugf output
var debug atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug enables or disables Debugf output
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether debug output is enabled
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs through Logf only when debug output has been enabled
func Debugf(format string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	Logf(format, v...)
}
