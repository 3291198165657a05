package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kianlavi/onlyfan/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.metrics != nil {
		router.Use(h.withMetrics)
	}
	router.Use(withGZip)

	// service routes
	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	// contents API, anonymous reads allowed for public repositories
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/repos/{owner}/{repo}", h.getRepository)
		r.Get("/repos/{owner}/{repo}/commits", h.listCommits)
		r.Get("/repos/{owner}/{repo}/contents/*", h.getContents)
		r.Put("/repos/{owner}/{repo}/contents/*", h.putContents)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteAPIError(w, "Not Found", http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
