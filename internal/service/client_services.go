package service

import (
	"context"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/crypto"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/session"
	"github.com/kianlavi/onlyfan/internal/validators"
)

// ClientServices bundles the admin client services around one session.
type ClientServices struct {
	Access  AccessService
	Content ContentService
	Refresh RefreshJob

	session *session.Session
}

// NewClientServices wires the client services over a store client and a
// vault reader.
func NewClientServices(store adapter.ContentStore, reader adapter.DocumentReader, cfg config.ClientApp, logger *logger.Logger) (*ClientServices, error) {
	sealVersion, err := crypto.VersionForKDF(cfg.VaultKDF)
	if err != nil {
		return nil, err
	}
	vault, err := crypto.NewCredentialVault(sealVersion)
	if err != nil {
		return nil, fmt.Errorf("create credential vault: %w", err)
	}

	return newClientServices(store, reader, vault, cfg, logger), nil
}

func newClientServices(store adapter.ContentStore, reader adapter.DocumentReader, vault crypto.CredentialVault, cfg config.ClientApp, logger *logger.Logger) *ClientServices {
	sess := session.New()
	validator := validators.NewContentValidator(cfg.MinPasswordLength)

	content := NewContentService(store, sess, validator, ContentPaths{
		Posts:     cfg.PostsPath,
		Profile:   cfg.ProfilePath,
		ImagesDir: cfg.ImagesDir,
	}, logger)

	return &ClientServices{
		Access:  NewAccessService(store, reader, vault, validator, sess, cfg.VaultPath, logger),
		Content: content,
		Refresh: NewRefreshJob(content, logger),
		session: sess,
	}
}

// Logout stops background refreshes, drops cached content and destroys the
// session.
func (s *ClientServices) Logout(ctx context.Context) {
	s.Refresh.Stop()
	s.Content.Reset()
	s.Access.Logout(ctx)
}
