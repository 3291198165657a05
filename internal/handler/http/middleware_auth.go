package http

import (
	"net/http"

	"github.com/kianlavi/onlyfan/internal/utils"
)

// auth resolves the bearer token of a request.
//
// Requests without an "Authorization" header pass through as anonymous;
// authorize decides later what they may see. A malformed header or a token
// that fails validation is rejected with 401 ("Bad credentials" in the
// hosted API). A valid token is stored in the request context with
// [utils.WithToken].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, ErrInvalidAuthorizationHeader, "Handler.auth")
			return
		}

		token, err := h.services.TokenService.ParseToken(r.Context(), tokenString)
		if err != nil {
			h.writeError(w, r, err, "Handler.auth")
			return
		}

		h.log(r).Debug().
			Str("func", "Handler.auth").
			Str("repository", token.Repository()).
			Str("scope", token.Claims.Scope).
			Msg("token accepted")

		next.ServeHTTP(w, r.WithContext(utils.WithToken(r.Context(), token)))
	})
}
