// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package app holds the human-readable messages shown by the admin client
// (TUI and CLI) for the errors of the access and content services.
//
// The wording is kept in one place so both front ends describe a failure the
// same way. Message picks the message for an error chain.
package app

import (
	"errors"

	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/service"
)

const (
	// MsgWrongPassword is shown when the vault did not open. A wrong
	// password and a tampered envelope look the same.
	MsgWrongPassword = "wrong password"

	// MsgVaultNotFound is shown when no encrypted config exists yet.
	MsgVaultNotFound = "no admin config found, run setup first"

	// MsgCorruptVault is shown when the vault document cannot be parsed or
	// uses an unknown format version.
	MsgCorruptVault = "the admin config is damaged or from a newer version"

	// MsgCredentialRevoked is shown when the decrypted token is no longer
	// accepted by the store.
	MsgCredentialRevoked = "the stored token was rejected, run setup with a new token"

	// MsgAccessDenied is shown when the token cannot write to the repository.
	MsgAccessDenied = "the token has no write access to this repository"

	// MsgVersionConflict is shown when someone else changed the document
	// since it was loaded.
	MsgVersionConflict = "the content changed on the server, reload and try again"

	MsgAlreadyExists    = "a file with this name already exists"
	MsgDocumentNotFound = "the document does not exist"

	// MsgWriteOutcomeUnknown is shown when the connection failed during a
	// write. The change may or may not have been saved.
	MsgWriteOutcomeUnknown = "connection lost while saving, reload to see whether the change was saved"

	MsgTransport         = "the store is unreachable, check the connection"
	MsgNoSession         = "not unlocked, enter the password first"
	MsgPostNotFound      = "post not found"
	MsgMalformedDocument = "the document on the server is not valid JSON"
	MsgInvalidInput      = "invalid input"

	// MsgEntropyUnavailable is shown when no random bytes could be read to
	// seal the vault.
	MsgEntropyUnavailable = "the system random source is unavailable"

	MsgUnexpected = "unexpected error"
)

type errorMessage struct {
	err     error
	message string
}

// errorMessages is ordered: ErrWriteOutcomeUnknown wraps ErrTransport, so it
// has to be matched first.
var errorMessages = []errorMessage{
	{service.ErrWrongPassword, MsgWrongPassword},
	{service.ErrVaultNotFound, MsgVaultNotFound},
	{service.ErrCorruptVault, MsgCorruptVault},
	{service.ErrCredentialRevoked, MsgCredentialRevoked},
	{service.ErrAccessDenied, MsgAccessDenied},
	{service.ErrVersionConflict, MsgVersionConflict},
	{service.ErrAlreadyExists, MsgAlreadyExists},
	{service.ErrDocumentNotFound, MsgDocumentNotFound},
	{service.ErrWriteOutcomeUnknown, MsgWriteOutcomeUnknown},
	{service.ErrTransport, MsgTransport},
	{service.ErrNoSession, MsgNoSession},
	{service.ErrPostNotFound, MsgPostNotFound},
	{service.ErrMalformedDocument, MsgMalformedDocument},
	{crypto.ErrEntropyUnavailable, MsgEntropyUnavailable},
}

// Message returns the text shown to the user for err, or "" for nil.
//
// Validation failures are shown with the validator's reason, wherever the
// caller wrapped them.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var invalid *service.ValidationError
	if errors.As(err, &invalid) && invalid.Reason != nil {
		return MsgInvalidInput + ": " + invalid.Reason.Error()
	}
	if errors.Is(err, service.ErrValidation) {
		return MsgInvalidInput
	}

	for _, em := range errorMessages {
		if errors.Is(err, em.err) {
			return em.message
		}
	}
	return MsgUnexpected + ": " + err.Error()
}

// Known reports whether err maps to one of the messages above rather than
// the generic fallback.
func Known(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, service.ErrValidation) {
		return true
	}
	for _, em := range errorMessages {
		if errors.Is(err, em.err) {
			return true
		}
	}
	return false
}
