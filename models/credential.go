// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package models

// Credential is the decrypted bearer secret together with the subject
// (repository full name, "owner/name") it grants access to.
//
// A Credential with an empty Token is anonymous: the store client sends no
// Authorization header for it.
type Credential struct {
	// Subject is the repository the credential is scoped to.
	Subject string
	// Token is the bearer token attached to every authenticated store call.
	Token string
}

// IsAnonymous reports whether the credential carries no bearer token.
func (c Credential) IsAnonymous() bool {
	return c.Token == ""
}

// String never includes the token.
func (c Credential) String() string {
	if c.IsAnonymous() {
		return c.Subject + " (anonymous)"
	}
	return c.Subject + " (token)"
}
