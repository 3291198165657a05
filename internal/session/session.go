// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

// Package session holds the decrypted store credential for the lifetime of
// the process. Nothing in this package touches durable storage: a Session
// dies with the process or on Clear.
package session

import (
	"errors"
	"sync"

	"github.com/kianlavi/onlyfan/models"
)

// ErrNoSession is returned when a credential is requested while no session
// is established.
var ErrNoSession = errors.New("no active session, unlock first")

// Session is the in-memory holder of the Session Credential. The zero value
// is an empty session ready to use.
type Session struct {
	mu   sync.RWMutex
	cred *models.Credential
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Establish replaces any held credential with cred.
func (s *Session) Establish(cred models.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
}

// Credential returns the held credential or ErrNoSession.
func (s *Session) Credential() (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return models.Credential{}, ErrNoSession
	}
	return *s.cred, nil
}

// Active reports whether a credential is held.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred != nil
}

// Subject returns the subject of the held credential, or "" when none.
func (s *Session) Subject() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Subject
}

// Clear drops the credential. The token string is released to the GC; Go
// strings are immutable so there is nothing to overwrite.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
}
