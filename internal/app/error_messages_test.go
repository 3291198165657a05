package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "wrong password", err: service.ErrWrongPassword, want: MsgWrongPassword},
		{name: "missing vault", err: service.ErrVaultNotFound, want: MsgVaultNotFound},
		{
			name: "wrapped conflict",
			err:  fmt.Errorf("%w: %w", service.ErrVersionConflict, errors.New("409 Conflict")),
			want: MsgVersionConflict,
		},
		{name: "write outcome unknown before transport", err: service.ErrWriteOutcomeUnknown, want: MsgWriteOutcomeUnknown},
		{name: "transport", err: fmt.Errorf("%w: timeout", service.ErrTransport), want: MsgTransport},
		{name: "no session", err: service.ErrNoSession, want: MsgNoSession},
		{
			name: "corrupt vault",
			err:  fmt.Errorf("%w: %w", service.ErrCorruptVault, crypto.ErrUnsupportedEnvelopeVersion),
			want: MsgCorruptVault,
		},
		{
			name: "validation with reason",
			err:  &service.ValidationError{Reason: validators.ErrPasswordMismatch},
			want: "invalid input: passwords do not match",
		},
		{
			name: "wrapped validation keeps reason",
			err:  fmt.Errorf("setup: %w", &service.ValidationError{Reason: validators.ErrPasswordMismatch}),
			want: "invalid input: passwords do not match",
		},
		{
			name: "reasons stay distinct",
			err:  fmt.Errorf("unlock: %w", &service.ValidationError{Reason: fmt.Errorf("%w: need at least 4 characters", validators.ErrPasswordTooShort)}),
			want: "invalid input: password is too short: need at least 4 characters",
		},
		{name: "validation without detail", err: service.ErrValidation, want: MsgInvalidInput},
		{name: "entropy", err: fmt.Errorf("seal credential: %w", crypto.ErrEntropyUnavailable), want: MsgEntropyUnavailable},
		{name: "unknown", err: errors.New("boom"), want: "unexpected error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestKnown(t *testing.T) {
	assert.False(t, Known(nil))
	assert.False(t, Known(errors.New("unknown flag: --foo")))
	assert.True(t, Known(fmt.Errorf("unlock: %w", service.ErrWrongPassword)))
	assert.True(t, Known(fmt.Errorf("%w: text is required", service.ErrValidation)))
	assert.True(t, Known(fmt.Errorf("setup: %w", &service.ValidationError{Reason: validators.ErrInvalidSubject})))
}
