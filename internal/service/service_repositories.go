package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/store"
	"github.com/kianlavi/onlyfan/internal/validators"
	"github.com/kianlavi/onlyfan/models"
)

type repositoryService struct {
	registry store.RepositoryRegistry
	logger   *logger.Logger
}

func NewRepositoryService(registry store.RepositoryRegistry, logger *logger.Logger) RepositoryService {
	return &repositoryService{registry: registry, logger: logger}
}

// EnsureRepositories implements RepositoryService. Public repositories not
// listed in names are ensured too.
func (r *repositoryService) EnsureRepositories(ctx context.Context, names, public []string) error {
	all := slices.Clone(names)
	for _, p := range public {
		if !slices.Contains(all, p) {
			all = append(all, p)
		}
	}

	for _, fullName := range all {
		owner, name, ok := strings.Cut(fullName, "/")
		if !ok || owner == "" || name == "" {
			return invalidInput(fmt.Errorf("%w: %q", validators.ErrInvalidSubject, fullName))
		}

		repo := models.Repository{
			FullName: fullName,
			Name:     name,
			Private:  !slices.Contains(public, fullName),
		}
		if err := r.registry.EnsureRepository(ctx, repo); err != nil {
			return fmt.Errorf("ensure repository %s: %w", fullName, err)
		}

		r.logger.Info().
			Str("func", "repositoryService.EnsureRepositories").
			Str("repository", fullName).
			Bool("private", repo.Private).
			Msg("repository ready")
	}
	return nil
}

// GetRepository implements RepositoryService.
func (r *repositoryService) GetRepository(ctx context.Context, fullName string) (models.Repository, error) {
	repo, err := r.registry.GetRepository(ctx, fullName)
	if err != nil {
		return models.Repository{}, mapStoreError(err)
	}
	return repo, nil
}
