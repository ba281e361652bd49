package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ricardozepinto10/NextGenAcademy/internal/web/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
)

// pageData fills the shell fields common to every page
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("render failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}
