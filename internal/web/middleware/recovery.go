package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/pages"
)

// Recovery renders the error page when a page handler panics. The page
// shows the request ID for support reports. The user is left out since the
// panic may have come from loading it.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, requestID string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = pages.ServerError(layout.PageData{Title: "Error"}, requestID).Render(r.Context(), w)
	})
}
