package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/kianlavi/onlyfan/models"
)

// DocumentService serves the contents endpoints of the self-hosted store.
type DocumentService interface {
	GetDocument(ctx context.Context, repository, path string) (models.StoredDocument, error)

	// PutDocument writes req conditionally on req.ExpectedVersion and
	// returns the stored document and the revision recorded for it.
	PutDocument(ctx context.Context, repository string, req models.WriteRequest) (models.StoredDocument, models.Revision, error)

	ListRevisions(ctx context.Context, repository, path string, limit int) ([]models.Revision, error)
}

// RepositoryService manages the repositories the store hosts.
type RepositoryService interface {
	// EnsureRepositories creates every repository in names; those also in
	// public allow anonymous reads.
	EnsureRepositories(ctx context.Context, names, public []string) error

	GetRepository(ctx context.Context, fullName string) (models.Repository, error)
}

// TokenService issues and verifies the bearer tokens of the store.
type TokenService interface {
	CreateToken(ctx context.Context, repository, scope string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}
