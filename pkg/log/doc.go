// Package log is a small wrapper around the standard library logger used by
// every sieve package.
//
// Loggers are named after the component that owns them:
//
//	l := log.ForService("controller")
//	l.Infof("recomputed %d items", n)
//	l.Debugf("filters: %v", active) // printed only when debug is on
//
// Debug output can be enabled for every logger (SetGlobalDebug, wired to the
// CLI --debug flag) or for a single component (EnableDebugFor). Tests call
// SetOutput with a bytes.Buffer to assert on log lines.
//
// The package name collides with the standard library "log"; alias one of
// them when both are needed.
package log
