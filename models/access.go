// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package models

// AccessState is the state of the bootstrap/unlock state machine.
type AccessState int

const (
	// StateUninitialized means no vault exists yet; Setup is required.
	StateUninitialized AccessState = iota
	// StateAwaitingPassword means a vault exists and no session is active.
	StateAwaitingPassword
	// StateUnlocked means a session credential is established.
	StateUnlocked
	// StateLocked means the last Setup or Unlock failed; the failure is
	// kept alongside the state.
	StateLocked
)

func (s AccessState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingPassword:
		return "awaiting password"
	case StateUnlocked:
		return "unlocked"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// SetupRequest is the input of the first-time Setup flow.
type SetupRequest struct {
	Subject         string `validate:"required,repository"`
	Credential      string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// UnlockRequest is the input of the Unlock flow.
type UnlockRequest struct {
	Password string `validate:"required"`
}
