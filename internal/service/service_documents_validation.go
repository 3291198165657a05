package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/kianlavi/onlyfan/models"
)

const maxRevisionsLimit = 100

// DocumentValidationService rejects malformed paths and limits before they
// reach the storage backend.
type DocumentValidationService struct {
	inner DocumentService
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{}
}

func (v *DocumentValidationService) Wrap(inner DocumentService) DocumentService {
	v.inner = inner
	return v
}

func (v *DocumentValidationService) GetDocument(ctx context.Context, repository, docPath string) (models.StoredDocument, error) {
	if err := validateDocumentPath(docPath); err != nil {
		return models.StoredDocument{}, err
	}
	return v.inner.GetDocument(ctx, repository, docPath)
}

func (v *DocumentValidationService) PutDocument(ctx context.Context, repository string, req models.WriteRequest) (models.StoredDocument, models.Revision, error) {
	if err := validateDocumentPath(req.Path); err != nil {
		return models.StoredDocument{}, models.Revision{}, err
	}
	if strings.TrimSpace(req.Message) == "" {
		return models.StoredDocument{}, models.Revision{}, invalidInput(errors.New("empty commit message"))
	}
	return v.inner.PutDocument(ctx, repository, req)
}

func (v *DocumentValidationService) ListRevisions(ctx context.Context, repository, docPath string, limit int) ([]models.Revision, error) {
	if err := validateDocumentPath(docPath); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxRevisionsLimit {
		limit = maxRevisionsLimit
	}
	return v.inner.ListRevisions(ctx, repository, docPath, limit)
}

// validateDocumentPath accepts relative slash-separated paths that stay
// inside the repository.
func validateDocumentPath(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if cleaned := path.Clean(p); cleaned != p || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return nil
}
