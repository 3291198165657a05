// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package service

import (
	"errors"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/validators"
)

// mapAdapterError translates a store client error into the service taxonomy.
// The original error stays in the chain for diagnostics.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrVersionConflict, err)
	case errors.Is(err, adapter.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrCredentialRevoked, err)
	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case errors.Is(err, adapter.ErrWriteOutcomeUnknown):
		return fmt.Errorf("%w: %w", ErrWriteOutcomeUnknown, err)
	case errors.Is(err, adapter.ErrTransport):
		return fmt.Errorf("%w: %w", ErrTransport, err)
	case errors.Is(err, adapter.ErrInvalidSubject), errors.Is(err, adapter.ErrBadRequest):
		return invalidInput(err)
	}

	return err
}

// mapVaultError translates envelope and cipher failures.
func mapVaultError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return ErrWrongPassword
	case errors.Is(err, crypto.ErrMalformedEnvelope), errors.Is(err, crypto.ErrUnsupportedEnvelopeVersion):
		return fmt.Errorf("%w: %w", ErrCorruptVault, err)
	}
	return err
}

// mapValidationError marks validator failures as caller-fixable.
func mapValidationError(err error) error {
	if err == nil || errors.Is(err, validators.ErrUnsupportedType) {
		return err
	}
	return invalidInput(err)
}
