package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/middleware"
)

// Recovery answers a panicking API handler with INTERNAL_ERROR. The message
// names the request ID so a client report can be matched to the log line.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, requestID string) {
		err := apierr.NewInternalError()
		if requestID != "" {
			err = apierr.NewInternalErrorf("internal error (request %s)", requestID)
		}
		apierr.WriteError(w, err)
	})
}
