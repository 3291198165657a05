package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

const acceptHeader = "application/vnd.github+json"

// subjectPattern matches a repository full name, "owner/name".
var subjectPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidSubject reports whether subject is a repository full name.
func ValidSubject(subject string) bool {
	return subjectPattern.MatchString(subject) && !strings.Contains(subject, "..")
}

type contentsAPIAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewContentsAPIAdapter constructs the HTTP implementation of [ContentStore].
// It normalises and validates the base URL from cfg.HTTPAddress and applies
// cfg.RequestTimeout as the bounded wait of every call.
func NewContentsAPIAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ContentStore, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.UserAgent)

	return &contentsAPIAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// contentsPath builds /repos/{owner}/{repo}/contents/{path} with every path
// segment escaped.
func contentsPath(subject, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/repos/" + subject + "/contents/" + strings.Join(segments, "/")
}

func (h *contentsAPIAdapter) request(ctx context.Context, cred models.Credential) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", acceptHeader)

	if !cred.IsAnonymous() {
		req.SetHeader("Authorization", "Bearer "+cred.Token)
	}
	return req
}

// FetchDocument implements [ContentStore].
func (h *contentsAPIAdapter) FetchDocument(ctx context.Context, cred models.Credential, path string) (models.Document, error) {
	if !ValidSubject(cred.Subject) {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidSubject, cred.Subject)
	}

	var file models.ContentsFile
	resp, err := h.request(ctx, cred).
		SetResult(&file).
		Get(contentsPath(cred.Subject, path))
	if err != nil {
		h.logger.Debug().Err(err).
			Str("func", "contentsAPIAdapter.FetchDocument").
			Str("path", path).
			Msg("fetch request failed")
		if answered(resp) {
			return models.Document{}, unreadableResponse(resp, false, "fetch "+path, err)
		}
		return models.Document{}, fmt.Errorf("%w: fetch %s: %w", ErrTransport, path, err)
	}
	if err = mapHTTPError(resp, false); err != nil {
		return models.Document{}, err
	}

	if file.SHA == "" || (file.Encoding != "" && file.Encoding != "base64") {
		return models.Document{}, fmt.Errorf("%w: %s has encoding %q", ErrUnexpectedResponse, path, file.Encoding)
	}

	content, err := decodeContent(file.Content)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: decode %s: %w", ErrUnexpectedResponse, path, err)
	}

	return models.Document{
		Path:    path,
		Content: content,
		Version: models.Version(file.SHA),
	}, nil
}

// WriteDocument implements [ContentStore].
func (h *contentsAPIAdapter) WriteDocument(ctx context.Context, cred models.Credential, req models.WriteRequest) (models.DocumentVersion, error) {
	if !ValidSubject(cred.Subject) {
		return models.DocumentVersion{}, fmt.Errorf("%w: %q", ErrInvalidSubject, cred.Subject)
	}

	body := models.ContentsPutRequest{
		Message: req.Message,
		Content: base64.StdEncoding.EncodeToString(req.Content),
		SHA:     string(req.ExpectedVersion),
	}

	var out models.ContentsPutResponse
	resp, err := h.request(ctx, cred).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Put(contentsPath(cred.Subject, req.Path))
	if err != nil {
		h.logger.Warn().Err(err).
			Str("func", "contentsAPIAdapter.WriteDocument").
			Str("path", req.Path).
			Msg("write request failed, outcome unknown")
		if answered(resp) {
			if statusErr := mapHTTPError(resp, !req.ExpectedVersion.IsAbsent()); statusErr != nil {
				return models.DocumentVersion{}, statusErr
			}
		}
		// an accepted write whose reply cannot be read leaves the new version unknown
		return models.DocumentVersion{}, fmt.Errorf("%w: write %s: %w", ErrWriteOutcomeUnknown, req.Path, err)
	}
	if err = mapHTTPError(resp, !req.ExpectedVersion.IsAbsent()); err != nil {
		return models.DocumentVersion{}, err
	}

	if out.Content.SHA == "" {
		return models.DocumentVersion{}, fmt.Errorf("%w: write %s: response carries no version", ErrWriteOutcomeUnknown, req.Path)
	}

	h.logger.Debug().
		Str("func", "contentsAPIAdapter.WriteDocument").
		Str("path", req.Path).
		Str("version", out.Content.SHA).
		Msg("document written")

	return models.DocumentVersion{
		Path:     req.Path,
		Version:  models.Version(out.Content.SHA),
		CommitID: out.Commit.SHA,
	}, nil
}

// VerifyAccess implements [ContentStore].
func (h *contentsAPIAdapter) VerifyAccess(ctx context.Context, cred models.Credential) (bool, error) {
	if !ValidSubject(cred.Subject) {
		return false, fmt.Errorf("%w: %q", ErrInvalidSubject, cred.Subject)
	}

	var repo models.Repository
	resp, err := h.request(ctx, cred).
		SetResult(&repo).
		Get("/repos/" + cred.Subject)
	if err != nil {
		if answered(resp) {
			if statusErr := mapHTTPError(resp, false); isCredentialRejection(statusErr) {
				return false, nil
			}
			return false, unreadableResponse(resp, false, "verify access", err)
		}
		return false, fmt.Errorf("%w: verify access: %w", ErrTransport, err)
	}

	switch err = mapHTTPError(resp, false); {
	case err == nil:
	case isCredentialRejection(err):
		h.logger.Debug().
			Str("func", "contentsAPIAdapter.VerifyAccess").
			Str("subject", cred.Subject).
			Int("status", resp.StatusCode()).
			Msg("credential rejected")
		return false, nil
	default:
		return false, err
	}

	if repo.Permissions != nil && !repo.Permissions.Push {
		return false, nil
	}
	return true, nil
}

func isCredentialRejection(err error) bool {
	for _, target := range []error{ErrUnauthorized, ErrForbidden, ErrNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeContent decodes the base64 body of a contents response, which the
// hosted API wraps with newlines.
func decodeContent(encoded string) ([]byte, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	return base64.StdEncoding.DecodeString(cleaned)
}
