package http

import (
	"io"
	"net/http"
)

// getServerVersion answers GET /api/version with the configured version
// string, or the build version when none is configured.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, h.services.AppInfoService.GetAppVersion(r.Context()))
}
