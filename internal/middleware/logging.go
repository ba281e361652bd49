package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

type accessKey struct{}

// Access collects what the layers below the logger learn about a request.
// The guard middleware fills in the user and its decision.
type Access struct {
	RequestID string
	UserID    string
	Role      string
	Decision  string
}

// AccessFrom returns the request's Access record, or nil outside Logging
func AccessFrom(ctx context.Context) *Access {
	a, _ := ctx.Value(accessKey{}).(*Access)
	return a
}

// RecordGuard notes the guard's outcome for the access log
func RecordGuard(ctx context.Context, userID, role, decision string) {
	if a := AccessFrom(ctx); a != nil {
		a.UserID, a.Role, a.Decision = userID, role, decision
	}
}

// ResponseWriter wraps http.ResponseWriter to capture the status code and size
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// WriteHeader captures the status code
func (rw *ResponseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Write captures the response size
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Status returns the captured status code
func (rw *ResponseWriter) Status() int {
	return rw.status
}

// Logging assigns each request an ID and writes one access line per request
// once it completes. Server errors are logged at error level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > 64 {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			access := &Access{RequestID: id}
			wrapped := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), accessKey{}, access)))

			attrs := []slog.Attr{
				slog.String("request_id", access.RequestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Int("size", wrapped.size),
				slog.Duration("duration", time.Since(start)),
			}
			if access.Decision != "" {
				attrs = append(attrs, slog.String("guard", access.Decision))
			}
			if access.UserID != "" {
				attrs = append(attrs, slog.String("user_id", access.UserID), slog.String("role", access.Role))
			}

			level := slog.LevelInfo
			if wrapped.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}
