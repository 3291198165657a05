package http

import (
	"errors"
	"net/http"

	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/store"
	"github.com/kianlavi/onlyfan/internal/utils"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is ordered: service errors wrap store errors, so the first
// match wins.
var errorStatuses = []errorStatus{
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrRequiresAuthentication, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrPushDenied, http.StatusForbidden},
	{ErrResourceNotFound, http.StatusNotFound},
	{ErrInvalidBody, http.StatusBadRequest},

	{service.ErrRepositoryNotFound, http.StatusNotFound},
	{service.ErrDocumentNotFound, http.StatusNotFound},
	{service.ErrVersionConflict, http.StatusConflict},
	{service.ErrAlreadyExists, http.StatusUnprocessableEntity},
	{service.ErrInvalidPath, http.StatusBadRequest},
	{service.ErrValidation, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the contents API error body. Internal errors are
// logged and never echoed to the caller.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	message := err.Error()

	switch {
	case status >= http.StatusInternalServerError:
		h.log(r).Error().Err(err).Str("func", fn).Msg("request failed")
		message = http.StatusText(status)
	case status == http.StatusNotFound:
		// 404 never says whether the repository or the document is missing
		h.log(r).Debug().Err(err).Str("func", fn).Msg("not found")
		message = "Not Found"
	default:
		h.log(r).Info().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	utils.WriteAPIError(w, message, status)
}
