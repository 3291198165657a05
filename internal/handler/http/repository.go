package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

func repositoryName(r *http.Request) string {
	return chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
}

// loadRepository returns the repository of the request path if the caller
// may access it.
func (h *Handler) loadRepository(r *http.Request, write bool) (models.Repository, error) {
	repo, err := h.services.RepositoryService.GetRepository(r.Context(), repositoryName(r))
	if err != nil {
		return models.Repository{}, err
	}
	if err = authorize(r, repo, write); err != nil {
		return models.Repository{}, err
	}
	return repo, nil
}

// getRepository serves GET /repos/{owner}/{repo}. The admin client checks
// permissions.push on it before sealing a credential.
func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := h.loadRepository(r, false)
	if err != nil {
		h.writeError(w, r, err, "Handler.getRepository")
		return
	}

	repo.Permissions = permissionsFor(r)
	_, _ = utils.WriteJSON(w, repo, http.StatusOK)
}
