package http

import (
	"net/http"
	"strconv"

	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

// listCommits serves GET /repos/{owner}/{repo}/commits?path=...&per_page=...,
// the revision history of one document, newest first.
func (h *Handler) listCommits(w http.ResponseWriter, r *http.Request) {
	repo, err := h.loadRepository(r, false)
	if err != nil {
		h.writeError(w, r, err, "Handler.listCommits")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	revisions, err := h.services.DocumentService.ListRevisions(r.Context(), repo.FullName, r.URL.Query().Get("path"), limit)
	if err != nil {
		h.writeError(w, r, err, "Handler.listCommits")
		return
	}

	commits := make([]models.RepositoryCommit, 0, len(revisions))
	for _, rev := range revisions {
		commits = append(commits, models.RepositoryCommit{
			SHA: rev.CommitID,
			Commit: models.CommitDetail{
				Message:   rev.Message,
				Committer: models.CommitSignature{Date: rev.CreatedAt.UTC()},
			},
		})
	}

	_, _ = utils.WriteJSON(w, commits, http.StatusOK)
}
