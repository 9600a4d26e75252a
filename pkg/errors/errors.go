// Package errors provides structured error reporting for flipclock hosts and
// widgets.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind says which stage of the pipeline produced an error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInit covers setup failures such as fonts that do not parse.
	KindInit
	// KindConfig covers rejected configuration values.
	KindConfig
	// KindRender covers failures while painting a frame.
	KindRender
	KindPanic
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindInit:    "init",
	KindConfig:  "config",
	KindRender:  "render",
	KindPanic:   "panic",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// FlipError is an error raised inside a flipclock component, tagged with
// the operation and stage it came from.
type FlipError struct {
	Op   string
	Kind ErrorKind
	Err  error
	// StackTrace is optional; LogHandler prints it in verbose mode.
	StackTrace string
	// Timestamp is filled in by Report when zero.
	Timestamp time.Time
}

func (e *FlipError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FlipError) Unwrap() error { return e.Err }

// PanicError carries a value recovered from a panic.
type PanicError struct {
	Op         string
	Value      any
	StackTrace string
	Timestamp  time.Time
}

func (e *PanicError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
}

// ConfigError reports a configuration key that could not be applied.
// Source names where the value came from: "config", "env" or "flag".
type ConfigError struct {
	Source string
	Key    string
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q: %v", e.Source, e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrorHandler receives everything passed to Report and ReportPanic. It may
// be called from any goroutine that paints.
type ErrorHandler interface {
	HandleError(err *FlipError)
	HandlePanic(err *PanicError)
}
