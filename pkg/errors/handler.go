package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler installs the process-wide handler. Nil restores a LogHandler
// writing to slog.Default.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	current.Store(&handlerBox{h: h})
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report stamps err and hands it to the installed handler. Nil is ignored.
func Report(err *FlipError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic stamps err and hands it to the installed handler. Nil is ignored.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// NewPanicError wraps a recovered value, capturing the stack of the caller.
func NewPanicError(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	}
}

// Recover reports a panic in progress and stops it. It must be deferred
// directly:
//
//	defer errors.Recover("engine.Run")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(NewPanicError(op, r))
	}
}

// RecoverWithCallback is Recover followed by callback(r) when a panic was
// stopped.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(NewPanicError(op, r))
	if callback != nil {
		callback(r)
	}
}

// CaptureStack formats the stack of its caller, one "function (file:line)"
// entry per line.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for frame, more := frames.Next(); ; frame, more = frames.Next() {
		fmt.Fprintf(&sb, "%s (%s:%d)\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
