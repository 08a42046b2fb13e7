// Package errors provides coded errors for turboterm's command layer.
//
// Markup and table rendering never return errors; every code here belongs
// to configuration loading, command registration, argument conversion and
// input reading. Codes are stable strings, so tests and callers branch on
// IsErrorCode rather than on message text.
package errors
