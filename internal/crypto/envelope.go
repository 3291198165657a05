// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Envelope is the persisted, encrypted form of the shared credential.
// Subject is stored in the clear so the unlock flow knows which repository
// to talk to before decryption succeeds.
type Envelope struct {
	Version    int
	Subject    string
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// envelopeDocument is the JSON layout of the vault document. Field names
// are shared with envelopes written by the browser admin panel, which has
// no "v" field.
type envelopeDocument struct {
	Version *int   `json:"v,omitempty"`
	Repo    string `json:"repo"`
	Salt    string `json:"salt"`
	IV      string `json:"iv"`
	Data    string `json:"data"`
}

// Validate checks the structural invariants of an envelope.
func (e Envelope) Validate() error {
	if _, err := deriverFor(e.Version); err != nil {
		return fmt.Errorf("%w: %d", err, e.Version)
	}
	switch {
	case e.Subject == "":
		return fmt.Errorf("%w: empty subject", ErrMalformedEnvelope)
	case len(e.Salt) != saltLen:
		return fmt.Errorf("%w: salt must be %d bytes, got %d", ErrMalformedEnvelope, saltLen, len(e.Salt))
	case len(e.Nonce) != nonceLen:
		return fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrMalformedEnvelope, nonceLen, len(e.Nonce))
	case len(e.Ciphertext) < tagLen:
		return fmt.Errorf("%w: ciphertext shorter than the integrity tag", ErrMalformedEnvelope)
	}
	return nil
}

// Serialize encodes a valid envelope as the JSON vault document.
func Serialize(e Envelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	version := e.Version
	doc := envelopeDocument{
		Version: &version,
		Repo:    e.Subject,
		Salt:    base64.StdEncoding.EncodeToString(e.Salt),
		IV:      base64.StdEncoding.EncodeToString(e.Nonce),
		Data:    base64.StdEncoding.EncodeToString(e.Ciphertext),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// Deserialize decodes a JSON vault document. A document without a version
// field is treated as [EnvelopeV1].
func Deserialize(data []byte) (Envelope, error) {
	var doc envelopeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	e := Envelope{
		Version: EnvelopeV1,
		Subject: doc.Repo,
	}
	if doc.Version != nil {
		e.Version = *doc.Version
	}

	var err error
	if e.Salt, err = base64.StdEncoding.DecodeString(doc.Salt); err != nil {
		return Envelope{}, fmt.Errorf("%w: salt: %w", ErrMalformedEnvelope, err)
	}
	if e.Nonce, err = base64.StdEncoding.DecodeString(doc.IV); err != nil {
		return Envelope{}, fmt.Errorf("%w: iv: %w", ErrMalformedEnvelope, err)
	}
	if e.Ciphertext, err = base64.StdEncoding.DecodeString(doc.Data); err != nil {
		return Envelope{}, fmt.Errorf("%w: data: %w", ErrMalformedEnvelope, err)
	}

	if err := e.Validate(); err != nil {
		return Envelope{}, err
	}
	return e, nil
}
