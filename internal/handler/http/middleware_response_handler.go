package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// recordResponse wraps w in chi's status and size recorder. Stacked
// middleware share the outermost recorder.
func recordResponse(w http.ResponseWriter, r *http.Request) middleware.WrapResponseWriter {
	if ww, ok := w.(middleware.WrapResponseWriter); ok {
		return ww
	}
	return middleware.NewWrapResponseWriter(w, r.ProtoMajor)
}

// responseStatus is the recorded status, 200 for a handler that wrote
// nothing.
func responseStatus(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
