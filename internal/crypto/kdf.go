// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Envelope format versions. The KDF parameters of a version are frozen: a
// stronger setting needs a new version number.
const (
	// EnvelopeV1 derives keys with PBKDF2-HMAC-SHA256, 100 000 iterations.
	// Envelopes written without a version field are V1.
	EnvelopeV1 = 1
	// EnvelopeV2 derives keys with Argon2id (t=1, m=64 MiB, p=4).
	EnvelopeV2 = 2
)

const (
	keyLen   = 32 // AES-256
	saltLen  = 16
	nonceLen = 12
	tagLen   = 16

	pbkdf2Iterations = 100_000
)

type pbkdf2Deriver struct {
	iterations int
}

// DeriveKey implements [KeyDeriver].
func (d pbkdf2Deriver) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, d.iterations, keyLen, sha256.New)
}

type argon2idDeriver struct {
	time    uint32
	memory  uint32
	threads uint8
}

// DeriveKey implements [KeyDeriver].
func (d argon2idDeriver) DeriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, d.time, d.memory, d.threads, keyLen)
}

// derivers maps every supported envelope version to its KDF.
var derivers = map[int]KeyDeriver{
	EnvelopeV1: pbkdf2Deriver{iterations: pbkdf2Iterations},
	EnvelopeV2: argon2idDeriver{time: 1, memory: 64 * 1024, threads: 4},
}

// VersionForKDF maps a KDF name from configuration ("pbkdf2", "argon2id")
// to the envelope version that uses it.
func VersionForKDF(name string) (int, error) {
	switch name {
	case "", "pbkdf2":
		return EnvelopeV1, nil
	case "argon2id":
		return EnvelopeV2, nil
	default:
		return 0, ErrUnsupportedEnvelopeVersion
	}
}

func deriverFor(version int) (KeyDeriver, error) {
	d, ok := derivers[version]
	if !ok {
		return nil, ErrUnsupportedEnvelopeVersion
	}
	return d, nil
}
