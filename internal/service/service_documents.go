package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/store"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

type documentService struct {
	documents store.DocumentRepository
	ids       *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

// NewDocumentService constructs the DocumentService over documents.
// Versions are git blob SHAs of the content, so any content change yields
// a new version.
func NewDocumentService(documents store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documents: documents,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

// GetDocument implements DocumentService.
func (d *documentService) GetDocument(ctx context.Context, repository, path string) (models.StoredDocument, error) {
	doc, err := d.documents.GetDocument(ctx, repository, path)
	if err != nil {
		return models.StoredDocument{}, mapStoreError(err)
	}
	return doc, nil
}

// PutDocument implements DocumentService.
func (d *documentService) PutDocument(ctx context.Context, repository string, req models.WriteRequest) (models.StoredDocument, models.Revision, error) {
	log := logger.FromContext(ctx)
	now := d.now().UTC()

	doc := models.StoredDocument{
		Repository: repository,
		Path:       req.Path,
		Content:    req.Content,
		SHA:        models.Version(utils.GitBlobSHA(req.Content)),
		UpdatedAt:  now,
	}
	rev := models.Revision{
		Repository: repository,
		Path:       req.Path,
		SHA:        doc.SHA,
		CommitID:   d.ids.GenerateCommitID(),
		Message:    req.Message,
		CreatedAt:  now,
	}

	stored, err := d.documents.PutDocument(ctx, doc, req.ExpectedVersion, rev)
	if err != nil {
		log.Debug().Err(err).
			Str("func", "documentService.PutDocument").
			Str("repository", repository).
			Str("path", req.Path).
			Msg("write rejected")
		return models.StoredDocument{}, models.Revision{}, mapStoreError(err)
	}

	log.Info().
		Str("func", "documentService.PutDocument").
		Str("repository", repository).
		Str("path", req.Path).
		Str("sha", string(stored.SHA)).
		Str("commit", rev.CommitID).
		Msg("document written")
	return stored, rev, nil
}

// ListRevisions implements DocumentService.
func (d *documentService) ListRevisions(ctx context.Context, repository, path string, limit int) ([]models.Revision, error) {
	revs, err := d.documents.ListRevisions(ctx, repository, path, limit)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return revs, nil
}

// mapStoreError translates store sentinels into the service taxonomy shared
// with the client side.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrDocumentNotFound):
		return fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	case errors.Is(err, store.ErrDocumentExists):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrVersionConflict, err)
	case errors.Is(err, store.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	case errors.Is(err, store.ErrInvalidPath):
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return err
}
