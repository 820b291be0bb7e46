package errors

import (
	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that writes errors through a zap logger.
type LogHandler struct {
	// Verbose attaches stack traces to every entry.
	Verbose bool

	log *zap.Logger
}

// NewLogHandler returns a LogHandler writing to log. A nil log falls back to
// a production logger, or a no-op logger if one cannot be built.
func NewLogHandler(log *zap.Logger) *LogHandler {
	if log == nil {
		var err error
		log, err = zap.NewProduction()
		if err != nil {
			log = zap.NewNop()
		}
	}
	return &LogHandler{log: log.Named("fieldkit")}
}

// HandleError logs a FieldError.
func (h *LogHandler) HandleError(err *FieldError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Field != "" {
		fields = append(fields, zap.String("field", err.Field))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	// measurement fallbacks are expected during startup
	if err.Kind == KindMeasurement {
		h.log.Debug("field error", fields...)
		return
	}
	h.log.Error("field error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.log.Error("field panic", fields...)
}
