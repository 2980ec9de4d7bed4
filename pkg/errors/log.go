package errors

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogHandler is an ErrorHandler that logs errors through zerolog.
type LogHandler struct {
	// Logger overrides the global zerolog logger when non-nil.
	Logger *zerolog.Logger
}

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return &log.Logger
}

// HandleError logs a DiagnosticError at error level, with its stack when one
// was captured.
func (h *LogHandler) HandleError(err *DiagnosticError) {
	if err == nil {
		return
	}
	event := h.logger().Error().
		Err(err.Err).
		Str("op", err.Op).
		Str("kind", err.Kind.String())
	if err.Channel != "" {
		event = event.Str("channel", err.Channel)
	}
	if err.Action != "" {
		event = event.Str("action", err.Action)
	}
	if err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("diagnostic error")
}
