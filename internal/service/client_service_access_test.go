package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/mock"
	"github.com/kianlavi/onlyfan/internal/session"
	"github.com/kianlavi/onlyfan/internal/validators"
	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testVaultPath = "site/admin-config.enc.json"

type accessFixture struct {
	store   *mock.MockContentStore
	reader  *mock.MockDocumentReader
	session *session.Session
	svc     AccessService
}

func newAccessFixture(t *testing.T, vault crypto.CredentialVault) *accessFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &accessFixture{
		store:   mock.NewMockContentStore(ctrl),
		reader:  mock.NewMockDocumentReader(ctrl),
		session: session.New(),
	}
	if vault == nil {
		var err error
		vault, err = crypto.NewCredentialVault(crypto.EnvelopeV1)
		require.NoError(t, err)
	}
	f.svc = NewAccessService(f.store, f.reader, vault, validators.NewContentValidator(8), f.session, testVaultPath, logger.Nop())
	return f
}

func validSetup() models.SetupRequest {
	return models.SetupRequest{
		Subject:         "org/repo",
		Credential:      "tok_abc",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	}
}

var testCred = models.Credential{Subject: "org/repo", Token: "tok_abc"}

// setupVault runs a successful Setup and returns the committed envelope.
func setupVault(t *testing.T, f *accessFixture) []byte {
	t.Helper()
	var written models.WriteRequest

	f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)
	f.store.EXPECT().FetchDocument(gomock.Any(), testCred, testVaultPath).Return(models.Document{}, adapter.ErrNotFound)
	f.store.EXPECT().WriteDocument(gomock.Any(), testCred, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Credential, req models.WriteRequest) (models.DocumentVersion, error) {
			written = req
			return models.DocumentVersion{Path: req.Path, Version: "v1"}, nil
		})

	require.NoError(t, f.svc.Setup(context.Background(), validSetup()))
	return written.Content
}

func TestAccessService_Probe(t *testing.T) {
	tests := []struct {
		name      string
		readErr   error
		active    bool
		wantState models.AccessState
		wantErr   error
	}{
		{name: "no vault", readErr: adapter.ErrNotFound, wantState: models.StateUninitialized},
		{name: "vault exists", wantState: models.StateAwaitingPassword},
		{name: "vault exists with session", active: true, wantState: models.StateUnlocked},
		{name: "store unreachable", readErr: adapter.ErrTransport, wantState: models.StateLocked, wantErr: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccessFixture(t, nil)
			if tt.active {
				f.session.Establish(testCred)
			}
			f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{Path: testVaultPath}, tt.readErr)

			state, err := f.svc.Probe(context.Background())
			assert.Equal(t, tt.wantState, state)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			current, _ := f.svc.State()
			assert.Equal(t, tt.wantState, current)
		})
	}
}

func TestAccessService_SetupThenUnlock(t *testing.T) {
	f := newAccessFixture(t, nil)
	content := setupVault(t, f)

	state, err := f.svc.State()
	require.NoError(t, err)
	assert.Equal(t, models.StateUnlocked, state)
	assert.Equal(t, "org/repo", f.svc.Subject())

	envelope, err := crypto.Deserialize(content)
	require.NoError(t, err)
	assert.Equal(t, "org/repo", envelope.Subject)
	assert.NotContains(t, string(content), "tok_abc")

	f.svc.Logout(context.Background())
	assert.False(t, f.session.Active())

	f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{Path: testVaultPath, Content: content, Version: "v1"}, nil)
	f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)

	require.NoError(t, f.svc.Unlock(context.Background(), models.UnlockRequest{Password: "hunter22"}))

	cred, err := f.session.Credential()
	require.NoError(t, err)
	assert.Equal(t, testCred, cred)
}

func TestAccessService_UnlockWrongPassword(t *testing.T) {
	f := newAccessFixture(t, nil)
	content := setupVault(t, f)
	f.svc.Logout(context.Background())

	f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{Content: content}, nil)

	err := f.svc.Unlock(context.Background(), models.UnlockRequest{Password: "wrong"})
	require.ErrorIs(t, err, ErrWrongPassword)

	state, stateErr := f.svc.State()
	assert.Equal(t, models.StateAwaitingPassword, state)
	assert.ErrorIs(t, stateErr, ErrWrongPassword)
	assert.False(t, f.session.Active())
}

func TestAccessService_UnlockFailures(t *testing.T) {
	goodEnvelope := func(t *testing.T) []byte {
		t.Helper()
		f := newAccessFixture(t, nil)
		return setupVault(t, f)
	}

	tests := []struct {
		name      string
		prepare   func(t *testing.T, f *accessFixture)
		wantErr   error
		wantState models.AccessState
	}{
		{
			name: "vault missing",
			prepare: func(t *testing.T, f *accessFixture) {
				f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{}, adapter.ErrNotFound)
			},
			wantErr:   ErrVaultNotFound,
			wantState: models.StateUninitialized,
		},
		{
			name: "vault unreadable",
			prepare: func(t *testing.T, f *accessFixture) {
				f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{Content: []byte("{not json")}, nil)
			},
			wantErr:   ErrCorruptVault,
			wantState: models.StateLocked,
		},
		{
			name: "credential revoked",
			prepare: func(t *testing.T, f *accessFixture) {
				content := goodEnvelope(t)
				f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{Content: content}, nil)
				f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(false, nil)
			},
			wantErr:   ErrCredentialRevoked,
			wantState: models.StateLocked,
		},
		{
			name: "store unreachable",
			prepare: func(t *testing.T, f *accessFixture) {
				f.reader.EXPECT().ReadDocument(gomock.Any(), testVaultPath).Return(models.Document{}, adapter.ErrTransport)
			},
			wantErr:   ErrTransport,
			wantState: models.StateLocked,
		},
		{
			name:      "empty password",
			prepare:   func(t *testing.T, f *accessFixture) {},
			wantErr:   ErrValidation,
			wantState: models.StateAwaitingPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccessFixture(t, nil)
			f.session.Establish(models.Credential{Subject: "org/other", Token: "stale"})
			tt.prepare(t, f)

			password := "hunter22"
			if tt.name == "empty password" {
				password = ""
			}

			err := f.svc.Unlock(context.Background(), models.UnlockRequest{Password: password})
			require.ErrorIs(t, err, tt.wantErr)

			state, _ := f.svc.State()
			assert.Equal(t, tt.wantState, state)
			assert.False(t, f.session.Active(), "failed unlock must not leave a credential")
		})
	}
}

func TestAccessService_SetupFailures(t *testing.T) {
	tests := []struct {
		name    string
		req     func() models.SetupRequest
		prepare func(f *accessFixture)
		wantErr error
	}{
		{
			name: "password mismatch",
			req: func() models.SetupRequest {
				r := validSetup()
				r.ConfirmPassword = "hunter23"
				return r
			},
			prepare: func(f *accessFixture) {},
			wantErr: validators.ErrPasswordMismatch,
		},
		{
			name: "invalid subject",
			req: func() models.SetupRequest {
				r := validSetup()
				r.Subject = "not-a-repo"
				return r
			},
			prepare: func(f *accessFixture) {},
			wantErr: ErrValidation,
		},
		{
			name: "credential without push access",
			req:  validSetup,
			prepare: func(f *accessFixture) {
				f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(false, nil)
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "concurrent setup wins",
			req:  validSetup,
			prepare: func(f *accessFixture) {
				f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)
				f.store.EXPECT().FetchDocument(gomock.Any(), testCred, testVaultPath).Return(models.Document{}, adapter.ErrNotFound)
				f.store.EXPECT().WriteDocument(gomock.Any(), testCred, gomock.Any()).Return(models.DocumentVersion{}, adapter.ErrAlreadyExists)
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "write outcome unknown",
			req:  validSetup,
			prepare: func(f *accessFixture) {
				f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)
				f.store.EXPECT().FetchDocument(gomock.Any(), testCred, testVaultPath).Return(models.Document{}, adapter.ErrNotFound)
				f.store.EXPECT().WriteDocument(gomock.Any(), testCred, gomock.Any()).Return(models.DocumentVersion{}, adapter.ErrWriteOutcomeUnknown)
			},
			wantErr: ErrWriteOutcomeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccessFixture(t, nil)
			tt.prepare(f)

			err := f.svc.Setup(context.Background(), tt.req())
			require.ErrorIs(t, err, tt.wantErr)

			state, stateErr := f.svc.State()
			assert.Equal(t, models.StateLocked, state)
			assert.ErrorIs(t, stateErr, tt.wantErr)
			assert.False(t, f.session.Active())
		})
	}
}

func TestAccessService_SetupReplacesExistingVaultAtObservedVersion(t *testing.T) {
	f := newAccessFixture(t, nil)

	f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)
	f.store.EXPECT().FetchDocument(gomock.Any(), testCred, testVaultPath).Return(models.Document{Version: "old-sha"}, nil)
	f.store.EXPECT().WriteDocument(gomock.Any(), testCred, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Credential, req models.WriteRequest) (models.DocumentVersion, error) {
			assert.Equal(t, models.Version("old-sha"), req.ExpectedVersion)
			assert.Equal(t, SetupCommitMessage, req.Message)
			assert.Equal(t, testVaultPath, req.Path)
			return models.DocumentVersion{Version: "new-sha"}, nil
		})

	require.NoError(t, f.svc.Setup(context.Background(), validSetup()))
}

func TestAccessService_SealFailureLeavesNoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockCredentialVault(ctrl)
	f := newAccessFixture(t, vault)

	f.store.EXPECT().VerifyAccess(gomock.Any(), testCred).Return(true, nil)
	vault.EXPECT().Seal("org/repo", "tok_abc", "hunter22").Return(crypto.Envelope{}, crypto.ErrEntropyUnavailable)

	err := f.svc.Setup(context.Background(), validSetup())
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypto.ErrEntropyUnavailable))
	assert.False(t, f.session.Active())
}
