package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/session"
	"github.com/kianlavi/onlyfan/internal/validators"
	"github.com/kianlavi/onlyfan/models"
)

// SetupCommitMessage annotates the write of a new vault envelope.
const SetupCommitMessage = "Add encrypted admin config"

type accessService struct {
	store     adapter.ContentStore
	reader    adapter.DocumentReader
	vault     crypto.CredentialVault
	validator validators.Validator
	session   *session.Session
	vaultPath string

	mu      sync.Mutex
	state   models.AccessState
	lastErr error

	logger *logger.Logger
}

// NewAccessService constructs the bootstrap/unlock state machine.
//
// reader is used for every vault read: Unlock has no credential yet, so it
// reads the published site or the repository anonymously. store carries the
// authenticated calls. The machine starts Uninitialized until Probe runs.
func NewAccessService(
	store adapter.ContentStore,
	reader adapter.DocumentReader,
	vault crypto.CredentialVault,
	validator validators.Validator,
	sess *session.Session,
	vaultPath string,
	logger *logger.Logger,
) AccessService {
	return &accessService{
		store:     store,
		reader:    reader,
		vault:     vault,
		validator: validator,
		session:   sess,
		vaultPath: vaultPath,
		state:     models.StateUninitialized,
		logger:    logger,
	}
}

func (a *accessService) transition(state models.AccessState, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state, a.lastErr = state, err
}

// State implements AccessService.
func (a *accessService) State() (models.AccessState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.lastErr
}

// Subject implements AccessService.
func (a *accessService) Subject() string {
	return a.session.Subject()
}

// Probe implements AccessService.
func (a *accessService) Probe(ctx context.Context) (models.AccessState, error) {
	_, err := a.reader.ReadDocument(ctx, a.vaultPath)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		a.session.Clear()
		a.transition(models.StateUninitialized, nil)
		return models.StateUninitialized, nil
	case err != nil:
		err = mapAdapterError(err)
		a.logger.Warn().Err(err).
			Str("func", "accessService.Probe").
			Str("path", a.vaultPath).
			Msg("vault probe failed")
		a.transition(models.StateLocked, err)
		return models.StateLocked, err
	}

	if a.session.Active() {
		a.transition(models.StateUnlocked, nil)
		return models.StateUnlocked, nil
	}
	a.transition(models.StateAwaitingPassword, nil)
	return models.StateAwaitingPassword, nil
}

// Setup implements AccessService.
func (a *accessService) Setup(ctx context.Context, req models.SetupRequest) error {
	cred, err := a.setup(ctx, req)
	if err != nil {
		a.session.Clear()
		a.transition(models.StateLocked, err)
		a.logger.Info().Err(err).
			Str("func", "accessService.Setup").
			Str("subject", req.Subject).
			Msg("setup failed")
		return err
	}

	a.session.Establish(cred)
	a.transition(models.StateUnlocked, nil)
	a.logger.Info().
		Str("func", "accessService.Setup").
		Str("subject", cred.Subject).
		Msg("vault created, session established")
	return nil
}

func (a *accessService) setup(ctx context.Context, req models.SetupRequest) (models.Credential, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Credential{}, mapValidationError(err)
	}

	cred := models.Credential{Subject: req.Subject, Token: req.Credential}

	// a garbage credential must never be sealed and committed
	ok, err := a.store.VerifyAccess(ctx, cred)
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}
	if !ok {
		return models.Credential{}, ErrAccessDenied
	}

	envelope, err := a.vault.Seal(req.Subject, req.Credential, req.Password)
	if err != nil {
		return models.Credential{}, fmt.Errorf("seal credential: %w", err)
	}
	content, err := crypto.Serialize(envelope)
	if err != nil {
		return models.Credential{}, fmt.Errorf("serialize envelope: %w", err)
	}

	// replace an existing envelope only at the version we observed, so a
	// concurrent setup is detected instead of clobbered
	expected := models.NoVersion
	existing, err := a.store.FetchDocument(ctx, cred, a.vaultPath)
	switch {
	case err == nil:
		expected = existing.Version
	case !errors.Is(err, adapter.ErrNotFound):
		return models.Credential{}, mapAdapterError(err)
	}

	_, err = a.store.WriteDocument(ctx, cred, models.WriteRequest{
		Path:            a.vaultPath,
		Content:         content,
		ExpectedVersion: expected,
		Message:         SetupCommitMessage,
	})
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}

	return cred, nil
}

// Unlock implements AccessService.
func (a *accessService) Unlock(ctx context.Context, req models.UnlockRequest) error {
	a.session.Clear()

	cred, err := a.unlock(ctx, req)
	if err != nil {
		next := models.StateLocked
		switch {
		case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrValidation):
			next = models.StateAwaitingPassword
		case errors.Is(err, ErrVaultNotFound):
			next = models.StateUninitialized
		}
		a.transition(next, err)

		a.logger.Info().Err(err).
			Str("func", "accessService.Unlock").
			Stringer("next_state", next).
			Msg("unlock failed")
		return err
	}

	a.session.Establish(cred)
	a.transition(models.StateUnlocked, nil)
	a.logger.Info().
		Str("func", "accessService.Unlock").
		Str("subject", cred.Subject).
		Msg("session established")
	return nil
}

func (a *accessService) unlock(ctx context.Context, req models.UnlockRequest) (models.Credential, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Credential{}, mapValidationError(err)
	}

	doc, err := a.reader.ReadDocument(ctx, a.vaultPath)
	if errors.Is(err, adapter.ErrNotFound) {
		return models.Credential{}, ErrVaultNotFound
	}
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}

	envelope, err := crypto.Deserialize(doc.Content)
	if err != nil {
		return models.Credential{}, mapVaultError(err)
	}

	secret, err := a.vault.Open(envelope, req.Password)
	if err != nil {
		return models.Credential{}, mapVaultError(err)
	}

	cred := models.Credential{Subject: envelope.Subject, Token: secret}

	// a correctly decrypted but revoked token must not unlock
	ok, err := a.store.VerifyAccess(ctx, cred)
	if err != nil {
		return models.Credential{}, mapAdapterError(err)
	}
	if !ok {
		return models.Credential{}, ErrCredentialRevoked
	}

	return cred, nil
}

// Logout implements AccessService.
func (a *accessService) Logout(ctx context.Context) {
	a.session.Clear()
	a.transition(models.StateAwaitingPassword, nil)
	logger.FromContext(ctx).Debug().Str("func", "accessService.Logout").Msg("session cleared")
}
