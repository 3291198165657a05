package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access line per request. Rejected writes (4xx) log
// at warn so version conflicts stand out; server faults log at error.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		uri, method := r.RequestURI, r.Method

		ww := recordResponse(w, r)
		next.ServeHTTP(ww, r)

		status := responseStatus(ww)
		event := accessEvent(h.log(r), status)
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			event = event.Str("route", rctx.RoutePattern())
		}

		event.
			Str("uri", uri).
			Str("method", method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", ww.BytesWritten()).
			Send()
	})
}

func accessEvent(l *logger.Logger, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return l.Error()
	case status >= http.StatusBadRequest:
		return l.Warn()
	default:
		return l.Info()
	}
}
