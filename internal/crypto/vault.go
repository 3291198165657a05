// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// credentialVault is the private implementation of [CredentialVault].
type credentialVault struct {
	// sealVersion selects the KDF new envelopes are sealed with. Open
	// always follows the version recorded in the envelope.
	sealVersion int
}

// NewCredentialVault constructs a [CredentialVault] that seals new envelopes
// with the given format version ([EnvelopeV1] or [EnvelopeV2]).
func NewCredentialVault(sealVersion int) (CredentialVault, error) {
	if _, err := deriverFor(sealVersion); err != nil {
		return nil, fmt.Errorf("%w: %d", err, sealVersion)
	}
	return &credentialVault{sealVersion: sealVersion}, nil
}

// Seal implements [CredentialVault].
func (v *credentialVault) Seal(subject, secret, password string) (Envelope, error) {
	deriver, err := deriverFor(v.sealVersion)
	if err != nil {
		return Envelope{}, err
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	key := deriver.DeriveKey(password, salt)
	defer clear(key)

	gcm, err := newGCM(key)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Version:    v.sealVersion,
		Subject:    subject,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, []byte(secret), nil),
	}, nil
}

// Open implements [CredentialVault].
func (v *credentialVault) Open(envelope Envelope, password string) (string, error) {
	if err := envelope.Validate(); err != nil {
		return "", err
	}

	deriver, err := deriverFor(envelope.Version)
	if err != nil {
		return "", err
	}

	key := deriver.DeriveKey(password, envelope.Salt)
	defer clear(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	secret, err := gcm.Open(nil, envelope.Nonce, envelope.Ciphertext, nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	return string(secret), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
