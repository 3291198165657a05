package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

// siteReader reads documents from the published static site with plain
// GETs. The ETag, when present, is reported as the version; it is only
// informative and never used for conditional writes.
type siteReader struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewSiteReader constructs a [DocumentReader] over the published site at
// siteURL.
func NewSiteReader(siteURL string, timeout time.Duration, logger *logger.Logger) (DocumentReader, error) {
	baseURL, err := normalizeBaseURL(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site url: %w", err)
	}

	return &siteReader{
		client: utils.NewHTTPClient(baseURL, timeout, ""),
		logger: logger,
	}, nil
}

// ReadDocument implements [DocumentReader].
func (s *siteReader) ReadDocument(ctx context.Context, path string) (models.Document, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		Get("/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: read %s: %w", ErrTransport, path, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err = mapHTTPError(resp, false); err != nil {
		return models.Document{}, err
	}

	s.logger.Debug().
		Str("func", "siteReader.ReadDocument").
		Str("path", path).
		Int("size", len(resp.Body())).
		Msg("published document read")

	return models.Document{
		Path:    path,
		Content: resp.Body(),
		Version: models.Version(strings.Trim(resp.Header().Get("ETag"), `"`)),
	}, nil
}

// repositoryReader reads documents anonymously through the contents API.
type repositoryReader struct {
	store   ContentStore
	subject string
}

// NewRepositoryReader constructs a [DocumentReader] that reads from subject
// through store without a credential, which works for public repositories.
func NewRepositoryReader(store ContentStore, subject string) DocumentReader {
	return &repositoryReader{store: store, subject: subject}
}

// ReadDocument implements [DocumentReader].
func (r *repositoryReader) ReadDocument(ctx context.Context, path string) (models.Document, error) {
	return r.store.FetchDocument(ctx, models.Credential{Subject: r.subject}, path)
}
