package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/kianlavi/onlyfan/models"
)

// DocumentRepository persists documents of hosted repositories with
// compare-and-swap writes. Versions are the git blob SHA of the content.
type DocumentRepository interface {
	// GetDocument returns the document at path or [ErrDocumentNotFound].
	GetDocument(ctx context.Context, repository, path string) (models.StoredDocument, error)

	// PutDocument stores doc if expected matches the current version.
	// An absent expected version means create: [ErrDocumentExists] when a
	// document is already there. A present expected version fails with
	// [ErrDocumentNotFound] when nothing is stored and [ErrVersionConflict]
	// when it is stale. rev is recorded atomically with the write.
	PutDocument(ctx context.Context, doc models.StoredDocument, expected models.Version, rev models.Revision) (models.StoredDocument, error)

	// ListRevisions returns up to limit revisions of path, newest first.
	ListRevisions(ctx context.Context, repository, path string, limit int) ([]models.Revision, error)
}

// RepositoryRegistry keeps the set of repositories hosted by the store.
type RepositoryRegistry interface {
	// EnsureRepository creates repo or updates its visibility.
	EnsureRepository(ctx context.Context, repo models.Repository) error

	// GetRepository returns the repository or [ErrRepositoryNotFound].
	GetRepository(ctx context.Context, fullName string) (models.Repository, error)
}

// ErrorClassificator classifies driver errors of a SQL backend.
type ErrorClassificator interface {
	// Classify tells whether the failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports a primary key or unique constraint failure.
	IsUniqueViolation(err error) bool
}
