// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned by Open when the integrity tag does
	// not verify. This is the only way a wrong password is detected.
	ErrAuthenticationFailed = errors.New("envelope authentication failed")

	// ErrMalformedEnvelope is returned when an envelope (or its serialized
	// form) is structurally invalid: bad base64, wrong salt or nonce length,
	// missing subject, truncated ciphertext.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrUnsupportedEnvelopeVersion is returned for envelope versions this
	// build has no key deriver for.
	ErrUnsupportedEnvelopeVersion = errors.New("unsupported envelope version")

	// ErrEntropyUnavailable is returned by Seal when the system random
	// source fails.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)
