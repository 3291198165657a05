package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/models"
)

// repositoryRegistry is the SQL implementation of [RepositoryRegistry].
type repositoryRegistry struct {
	db     *DB
	logger *logger.Logger
}

// NewRepositoryRegistry constructs a [RepositoryRegistry] backed by db.
func NewRepositoryRegistry(db *DB, logger *logger.Logger) RepositoryRegistry {
	return &repositoryRegistry{db: db, logger: logger}
}

// EnsureRepository implements [RepositoryRegistry].
func (r *repositoryRegistry) EnsureRepository(ctx context.Context, repo models.Repository) error {
	query, args, err := r.db.upsertRepositoryQuery(repo, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "repositoryRegistry.EnsureRepository").
			Str("repository", repo.FullName).
			Msg("failed to upsert repository")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// GetRepository implements [RepositoryRegistry].
func (r *repositoryRegistry) GetRepository(ctx context.Context, fullName string) (models.Repository, error) {
	query, args, err := r.db.selectRepositoryQuery(fullName)
	if err != nil {
		return models.Repository{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var repo models.Repository
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&repo.FullName, &repo.Name, &repo.Private)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Repository{}, ErrRepositoryNotFound
	case err != nil:
		return models.Repository{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return repo, nil
}
