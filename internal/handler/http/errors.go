// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package http

import "errors"

// Sentinel errors of the transport layer. They are mapped to statuses by
// statusFromError like the service errors.
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not "Bearer <token>" or "token <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrRequiresAuthentication is returned for writes without a token.
	ErrRequiresAuthentication = errors.New("requires authentication")

	// ErrResourceNotFound hides repositories the caller may not see.
	ErrResourceNotFound = errors.New("not found")

	// ErrPushDenied is returned for writes with a pull-scoped token.
	ErrPushDenied = errors.New("token does not allow writes")

	// ErrInvalidBody is returned for request bodies that are not valid
	// JSON or carry content that is not base64.
	ErrInvalidBody = errors.New("problems parsing request body")
)
