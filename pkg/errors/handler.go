package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// maxStackDepth bounds the frames recorded for a reported fault.
const maxStackDepth = 32

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the destination for Report. A nil h restores the
// zerolog-backed LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// Handler returns the installed ErrorHandler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report stamps err and hands it to the installed handler. Unexpected faults
// that arrive without a stack get the reporter's call stack attached.
func Report(err *DiagnosticError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.Kind == KindUnexpected && err.StackTrace == "" {
		err.StackTrace = callerStack(3)
	}
	Handler().HandleError(err)
}

// Guard converts a panic in the deferring function into a PanicError carrying
// the panicking stack and passes it to onPanic. It must be deferred directly:
//
//	defer errors.Guard("camera.Execute", func(pe *errors.PanicError) { ... })
//
// Guard does not report; onPanic decides how the fault surfaces.
func Guard(op string, onPanic func(*PanicError)) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: callerStack(3),
		Timestamp:  time.Now(),
	}
	if onPanic != nil {
		onPanic(pe)
	}
}

// callerStack renders the goroutine's stack, skipping skip frames counted
// from runtime.Callers itself, as "function\n\tfile:line" entries.
func callerStack(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	pcs = pcs[:runtime.Callers(skip, pcs)]
	if len(pcs) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return b.String()
		}
	}
}
