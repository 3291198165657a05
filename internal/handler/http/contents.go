package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kianlavi/onlyfan/internal/metrics"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

// base64LineLength matches the line wrapping of the hosted API.
const base64LineLength = 60

// documentPath returns the wildcard part of a contents route, unescaped.
func documentPath(r *http.Request) (string, error) {
	p := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return p, nil
	}
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", service.ErrInvalidPath, err)
	}
	return unescaped, nil
}

func wrapBase64(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)

	var b strings.Builder
	for len(encoded) > base64LineLength {
		b.WriteString(encoded[:base64LineLength])
		b.WriteByte('\n')
		encoded = encoded[base64LineLength:]
	}
	b.WriteString(encoded)
	b.WriteByte('\n')
	return b.String()
}

func contentsFile(doc models.StoredDocument, withContent bool) models.ContentsFile {
	file := models.ContentsFile{
		Type: "file",
		Size: len(doc.Content),
		Name: path.Base(doc.Path),
		Path: doc.Path,
		SHA:  string(doc.SHA),
	}
	if withContent {
		file.Encoding = "base64"
		file.Content = wrapBase64(doc.Content)
	}
	return file
}

// getContents serves GET /repos/{owner}/{repo}/contents/*.
func (h *Handler) getContents(w http.ResponseWriter, r *http.Request) {
	repo, err := h.loadRepository(r, false)
	if err != nil {
		h.writeError(w, r, err, "Handler.getContents")
		return
	}

	docPath, err := documentPath(r)
	if err != nil {
		h.writeError(w, r, err, "Handler.getContents")
		return
	}

	doc, err := h.services.DocumentService.GetDocument(r.Context(), repo.FullName, docPath)
	if err != nil {
		h.writeError(w, r, err, "Handler.getContents")
		return
	}

	w.Header().Set("ETag", `"`+string(doc.SHA)+`"`)
	_, _ = utils.WriteJSON(w, contentsFile(doc, true), http.StatusOK)
}

// putContents serves PUT /repos/{owner}/{repo}/contents/*.
//
//	sha current            → 200
//	sha stale              → 409
//	sha, no document       → 404
//	no sha, document there → 422
//	no sha, no document    → 201
func (h *Handler) putContents(w http.ResponseWriter, r *http.Request) {
	repo, err := h.loadRepository(r, true)
	if err != nil {
		h.writeError(w, r, err, "Handler.putContents")
		return
	}

	docPath, err := documentPath(r)
	if err != nil {
		h.writeError(w, r, err, "Handler.putContents")
		return
	}

	var body models.ContentsPutRequest
	if err = json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err), "Handler.putContents")
		return
	}
	content, err := base64.StdEncoding.DecodeString(strings.NewReplacer("\n", "", "\r", "").Replace(body.Content))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: content is not valid base64", ErrInvalidBody), "Handler.putContents")
		return
	}

	req := models.WriteRequest{
		Path:            docPath,
		Content:         content,
		ExpectedVersion: models.Version(body.SHA),
		Message:         body.Message,
	}

	doc, rev, err := h.services.DocumentService.PutDocument(r.Context(), repo.FullName, req)
	if err != nil {
		h.observeWrite(false, err)
		h.writeError(w, r, err, "Handler.putContents")
		return
	}

	created := req.ExpectedVersion.IsAbsent()
	h.observeWrite(created, nil)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	_, _ = utils.WriteJSON(w, models.ContentsPutResponse{
		Content: contentsFile(doc, false),
		Commit:  models.Commit{SHA: rev.CommitID, Message: rev.Message},
	}, status)
}

func (h *Handler) observeWrite(created bool, err error) {
	if h.metrics == nil {
		return
	}

	result := metrics.WriteRejected
	switch {
	case err == nil && created:
		result = metrics.WriteCreated
	case err == nil:
		result = metrics.WriteUpdated
	case errors.Is(err, service.ErrVersionConflict), errors.Is(err, service.ErrDocumentNotFound):
		result = metrics.WriteConflict
	case errors.Is(err, service.ErrAlreadyExists):
		result = metrics.WriteExists
	}
	h.metrics.ObserveWrite(result)
}
