package http

import (
	"net/http"

	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

// authorize decides whether the caller may read (or write) repo.
//
//	no token, read    public → ok, private → 404
//	no token, write   401
//	other repository  404
//	pull token, write 403
func authorize(r *http.Request, repo models.Repository, write bool) error {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		switch {
		case write:
			return ErrRequiresAuthentication
		case repo.Private:
			return ErrResourceNotFound
		}
		return nil
	}

	if token.Repository() != repo.FullName {
		return ErrResourceNotFound
	}
	if write && !token.CanPush() {
		return ErrPushDenied
	}
	return nil
}

// permissionsFor reports the caller's permissions on an authorized
// repository. Anonymous callers get none, like the hosted API.
func permissionsFor(r *http.Request) *models.RepositoryPermissions {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		return nil
	}
	return &models.RepositoryPermissions{
		Push: token.CanPush(),
		Pull: true,
	}
}
