package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/kianlavi/onlyfan/models"
)

// mapHTTPError converts a non-2xx contents API response into a sentinel.
// conditional tells whether the request carried an expected version, which
// decides how 422 is read: the hosted API answers 422 both for a missing
// sha on an existing file and for a malformed one.
func mapHTTPError(resp *resty.Response, conditional bool) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", ErrVersionConflict, body)
	case http.StatusUnprocessableEntity:
		if conditional {
			return fmt.Errorf("%w: %s", ErrVersionConflict, body)
		}
		return fmt.Errorf("%w: %s", ErrAlreadyExists, body)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrServerUnavailable, resp.StatusCode(), body)
	}

	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, resp.StatusCode(), body)
}

// errorMessage prefers the "message" field of a JSON error body.
func errorMessage(resp *resty.Response) string {
	raw := strings.TrimSpace(string(resp.Body()))

	var apiErr models.APIError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	if raw == "" {
		return http.StatusText(resp.StatusCode())
	}
	return raw
}

// answered reports whether the store sent a status line before the request
// failed, which separates a bad body from an unreachable store.
func answered(resp *resty.Response) bool {
	return resp != nil && resp.RawResponse != nil && resp.StatusCode() != 0
}

// unreadableResponse classifies a request that got a status but failed while
// its body was decoded.
func unreadableResponse(resp *resty.Response, conditional bool, op string, err error) error {
	if statusErr := mapHTTPError(resp, conditional); statusErr != nil {
		return statusErr
	}
	return fmt.Errorf("%w: %s: status %d: %w", ErrUnexpectedResponse, op, resp.StatusCode(), err)
}
