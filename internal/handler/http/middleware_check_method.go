// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kianlavi/onlyfan/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// A path that matches a route for some other method gets 405 with an Allow
// header listing the registered methods; everything else gets the 404 body
// of the contents API. Route parameters and wildcards are matched through
// [chi.Mux.Match], so "/repos/o/r/contents/a.json" is checked against the
// "/repos/{owner}/{repo}/contents/*" pattern.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	candidates := []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodPatch}

	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range candidates {
			if method != r.Method && router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) == 0 {
			utils.WriteAPIError(w, "Not Found", http.StatusNotFound)
			return
		}

		for _, method := range allowed {
			w.Header().Add("Allow", method)
		}
		utils.WriteAPIError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}
