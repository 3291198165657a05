package service

import (
	"errors"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/session"
)

// Access and content errors surfaced to the admin client. Each maps to one
// human-readable message in internal/app.
var (
	ErrWrongPassword       = errors.New("wrong password")
	ErrVaultNotFound       = errors.New("no vault found, run setup")
	ErrCorruptVault        = errors.New("vault document is unreadable")
	ErrCredentialRevoked   = errors.New("stored credential no longer works, re-run setup")
	ErrAccessDenied        = errors.New("credential has no write access to the repository")
	ErrVersionConflict     = errors.New("document changed since it was read")
	ErrAlreadyExists       = errors.New("document already exists")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrTransport           = errors.New("store unreachable")
	ErrWriteOutcomeUnknown = fmt.Errorf("%w: write outcome unknown", ErrTransport)
	ErrValidation          = errors.New("invalid input")
	ErrNoSession           = session.ErrNoSession
	ErrPostNotFound        = errors.New("post not found")
	ErrMalformedDocument   = errors.New("document is not valid JSON")
)

// Self-hosted store errors.
var (
	ErrVersionIsNotSpecified   = errors.New("version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrRepositoryNotFound      = errors.New("repository not found")
	ErrInvalidPath             = errors.New("invalid document path")
)

// ValidationError is a rejected input together with the reason. It matches
// ErrValidation under errors.Is, so the reason survives any wrapping done by
// callers.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func invalidInput(reason error) error {
	return &ValidationError{Reason: reason}
}
