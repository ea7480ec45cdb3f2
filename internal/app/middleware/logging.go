package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sachinth/koda/internal/logger"
	"github.com/sachinth/koda/internal/util"
)

// Context keys for request ID and logger
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	LoggerKey    contextKey = "logger"

	HeaderXRequestID = "X-Request-ID"
	HeaderRequestID  = "X-Koda-Request-ID"
)

// responseWriter wraps http.ResponseWriter to capture response size and status
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += int64(size)
	return size, err
}

func (rw *responseWriter) WriteHeader(s int) {
	rw.status = s
	rw.ResponseWriter.WriteHeader(s)
}

// GetLogger retrieves a logger with request ID from context
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// RequestLogging adds a request ID to the logger context and logs
// request/response details. A detailed access record goes to the log
// file only, keeping terminal output readable.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(HeaderXRequestID)
		if requestID == "" {
			requestID = util.GenerateRequestID()
		}

		requestSize := r.ContentLength
		if requestSize < 0 {
			requestSize = 0
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		baseLogger := slog.Default().With("request_id", requestID)
		ctx = context.WithValue(ctx, LoggerKey, baseLogger)

		// surface the ID to the client for correlation
		w.Header().Set(HeaderRequestID, requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		baseLogger.Debug("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_bytes", requestSize,
		)

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		duration := time.Since(start)

		detailedCtx := context.WithValue(r.Context(), logger.DefaultDetailedCookie, true)
		baseLogger.InfoContext(detailedCtx, "Access log",
			"timestamp", start.Format(time.RFC3339),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", duration.Milliseconds(),
			"request_bytes", requestSize,
			"response_bytes", wrapped.size,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		baseLogger.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", duration.String(),
		)
	})
}
