package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/models"
)

// documentRepository is the SQL implementation of [DocumentRepository].
// It works on both PostgreSQL and SQLite; the dialect only changes the
// placeholder format of the built queries.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{DB: db, logger: logger}
}

// GetDocument implements [DocumentRepository].
func (r *documentRepository) GetDocument(ctx context.Context, repository, path string) (models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectDocumentQuery(repository, path)
	if err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		doc models.StoredDocument
		sha string
	)
	err = r.QueryRowContext(ctx, query, args...).
		Scan(&doc.Repository, &doc.Path, &doc.Content, &sha, &doc.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.StoredDocument{}, ErrDocumentNotFound
	case err != nil:
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("repository", repository).
			Str("path", path).
			Msg("failed to scan document row")
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	doc.SHA = models.Version(sha)
	return doc, nil
}

// PutDocument implements [DocumentRepository].
func (r *documentRepository) PutDocument(ctx context.Context, doc models.StoredDocument, expected models.Version, rev models.Revision) (models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		current, err := r.currentSHA(ctx, tx, doc.Repository, doc.Path)
		if err != nil {
			return err
		}

		switch {
		case expected.IsAbsent() && !current.IsAbsent():
			return ErrDocumentExists
		case expected.IsAbsent():
			err = r.insertDocument(ctx, tx, doc)
		case current.IsAbsent():
			return ErrDocumentNotFound
		case current != expected:
			return ErrVersionConflict
		default:
			err = r.updateDocument(ctx, tx, doc, expected)
		}
		if err != nil {
			return err
		}

		return r.insertRevision(ctx, tx, rev)
	})
	if err != nil {
		log.Debug().Err(err).
			Str("func", "documentRepository.PutDocument").
			Str("repository", doc.Repository).
			Str("path", doc.Path).
			Str("expected", string(expected)).
			Msg("document not written")
		return models.StoredDocument{}, err
	}

	return doc, nil
}

func (r *documentRepository) currentSHA(ctx context.Context, tx *sql.Tx, repository, path string) (models.Version, error) {
	query, args, err := r.selectDocumentSHAQuery(repository, path)
	if err != nil {
		return models.NoVersion, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sha string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&sha)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.NoVersion, nil
	case err != nil:
		return models.NoVersion, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return models.Version(sha), nil
}

func (r *documentRepository) insertDocument(ctx context.Context, tx *sql.Tx, doc models.StoredDocument) error {
	query, args, err := r.insertDocumentQuery(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		// a concurrent create won the race between our read and insert
		if r.errorClassificator.IsUniqueViolation(err) {
			return ErrDocumentExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *documentRepository) updateDocument(ctx context.Context, tx *sql.Tx, doc models.StoredDocument, expected models.Version) error {
	query, args, err := r.updateDocumentQuery(doc, expected)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *documentRepository) insertRevision(ctx context.Context, tx *sql.Tx, rev models.Revision) error {
	query, args, err := r.insertRevisionQuery(rev)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ListRevisions implements [DocumentRepository].
func (r *documentRepository) ListRevisions(ctx context.Context, repository, path string, limit int) ([]models.Revision, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectRevisionsQuery(repository, path, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ListRevisions").
			Str("repository", repository).
			Str("path", path).
			Msg("failed to execute query for revisions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	revisions := make([]models.Revision, 0, limit)
	for rows.Next() {
		var (
			rev models.Revision
			sha string
		)
		if err = rows.Scan(&rev.Repository, &rev.Path, &sha, &rev.CommitID, &rev.Message, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rev.SHA = models.Version(sha)
		revisions = append(revisions, rev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return revisions, nil
}
