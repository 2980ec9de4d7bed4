// Package errors provides structured error handling for the camera diagnostic.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidAction indicates an unrecognized entry-point name.
	KindInvalidAction
	// KindUnexpected indicates an unhandled fault from a collaborator or
	// malformed input.
	KindUnexpected
	// KindPlatform indicates a platform channel or native bridge error.
	KindPlatform
	// KindParsing indicates an event parsing failure.
	KindParsing
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidAction:
		return "invalid_action"
	case KindUnexpected:
		return "unexpected"
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// ErrInvalidAction is wrapped by every KindInvalidAction error.
var ErrInvalidAction = stderrors.New("invalid action")

// DiagnosticError represents a structured error surfaced by the diagnostic.
type DiagnosticError struct {
	// Op is the operation that failed (e.g., "camera.getCameraAuthorizationStatus").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Channel is the platform channel name, if applicable.
	Channel string
	// Action is the entry-point name the caller invoked, if applicable.
	Action string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DiagnosticError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Err
}

// InvalidAction returns the error surfaced when a caller names an entry point
// that does not exist.
func InvalidAction(op, action string) *DiagnosticError {
	return &DiagnosticError{
		Op:     op,
		Kind:   KindInvalidAction,
		Action: action,
		Err:    fmt.Errorf("%w: %q", ErrInvalidAction, action),
	}
}

// Unexpected wraps a collaborator fault with a descriptive message.
func Unexpected(op string, err error) *DiagnosticError {
	return &DiagnosticError{
		Op:   op,
		Kind: KindUnexpected,
		Err:  fmt.Errorf("exception occurred: %w", err),
	}
}

// KindOf returns the Kind of the first DiagnosticError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var de *DiagnosticError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PanicError represents a panic recovered by Guard.
type PanicError struct {
	// Op is the operation that panicked (e.g., "camera.Execute").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse channel data.
type ParseError struct {
	// Channel is the platform channel that delivered the data.
	Channel string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// ErrorHandler receives errors passed to Report.
type ErrorHandler interface {
	HandleError(err *DiagnosticError)
}
