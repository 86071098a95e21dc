package web

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

// loggingMiddleware logs every completed request.
type loggingMiddleware struct {
	logger zerolog.Logger
}

func newLoggingMiddleware(logger zerolog.Logger) *loggingMiddleware {
	return &loggingMiddleware{logger: logger}
}

// Wrap wraps an http.Handler with logging.
func (m *loggingMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		m.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Flush keeps the event stream working behind the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// recovery turns a panicking handler into a 500 response.
func recovery(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")

				writeJSONResponse(w, http.StatusInternalServerError, &ErrorResponse{Message: "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
