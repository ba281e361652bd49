package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked.
// requestID is empty when Logging is not installed above Recovery.
type PanicHandler func(w http.ResponseWriter, r *http.Request, requestID string)

// Recovery turns a handler panic into a logged 500 rendered by handler
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var requestID string
				if a := AccessFrom(r.Context()); a != nil {
					requestID = a.RequestID
				}
				logger.Error("panic recovered",
					slog.Any("error", rec),
					slog.String("request_id", requestID),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				handler(w, r, requestID)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
