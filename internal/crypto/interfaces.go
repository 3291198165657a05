package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_vault_mock.go -package=mock

// CredentialVault wraps a single shared secret (the store credential) under
// a key derived from a human password.
//
// Scheme:
//
//	Salt, Nonce = 16 and 12 fresh bytes from crypto/rand     (every Seal)
//	Key         = KDF(password, Salt)                        (per envelope version)
//	Ciphertext  = AES-256-GCM(Key, Nonce, secret)            (tag appended)
//
// The vault has no knowledge of the network or of where envelopes are kept.
type CredentialVault interface {
	// Seal encrypts secret under a key derived from password and returns a
	// new envelope labelled with subject. Salt and nonce are regenerated on
	// every call and cannot be supplied by the caller.
	//
	// Fails only when the system entropy source is unavailable.
	Seal(subject, secret, password string) (Envelope, error)

	// Open re-derives the key from password and the envelope salt and
	// decrypts the secret. A tag mismatch is reported as
	// [ErrAuthenticationFailed]: a wrong password and a corrupted envelope
	// are indistinguishable.
	Open(envelope Envelope, password string) (string, error)
}

// KeyDeriver turns a password and salt into a 256-bit key. Each envelope
// version is bound to exactly one KeyDeriver with fixed parameters.
type KeyDeriver interface {
	DeriveKey(password string, salt []byte) []byte
}
