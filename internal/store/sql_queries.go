package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/kianlavi/onlyfan/models"
)

const (
	tableRepositories = "repositories"
	tableDocuments    = "documents"
	tableRevisions    = "revisions"
)

func (db *DB) selectDocumentQuery(repository, path string) (string, []any, error) {
	return db.builder.
		Select("repository", "path", "content", "sha", "updated_at").
		From(tableDocuments).
		Where("repository = ? AND path = ?", repository, path).
		ToSql()
}

func (db *DB) selectDocumentSHAQuery(repository, path string) (string, []any, error) {
	return db.builder.
		Select("sha").
		From(tableDocuments).
		Where("repository = ? AND path = ?", repository, path).
		ToSql()
}

func (db *DB) insertDocumentQuery(doc models.StoredDocument) (string, []any, error) {
	return db.builder.
		Insert(tableDocuments).
		Columns("repository", "path", "content", "sha", "updated_at").
		Values(doc.Repository, doc.Path, doc.Content, string(doc.SHA), doc.UpdatedAt).
		ToSql()
}

// updateDocumentQuery is conditioned on the expected sha so a concurrent
// writer that slipped in between read and update leaves zero rows affected.
func (db *DB) updateDocumentQuery(doc models.StoredDocument, expected models.Version) (string, []any, error) {
	return db.builder.
		Update(tableDocuments).
		Set("content", doc.Content).
		Set("sha", string(doc.SHA)).
		Set("updated_at", doc.UpdatedAt).
		Where("repository = ? AND path = ? AND sha = ?", doc.Repository, doc.Path, string(expected)).
		ToSql()
}

func (db *DB) insertRevisionQuery(rev models.Revision) (string, []any, error) {
	return db.builder.
		Insert(tableRevisions).
		Columns("repository", "path", "sha", "commit_id", "message", "created_at").
		Values(rev.Repository, rev.Path, string(rev.SHA), rev.CommitID, rev.Message, rev.CreatedAt).
		ToSql()
}

func (db *DB) selectRevisionsQuery(repository, path string, limit int) (string, []any, error) {
	return db.builder.
		Select("repository", "path", "sha", "commit_id", "message", "created_at").
		From(tableRevisions).
		Where("repository = ? AND path = ?", repository, path).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
}

func (db *DB) upsertRepositoryQuery(repo models.Repository, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(tableRepositories).
		Columns("full_name", "name", "private", "created_at").
		Values(repo.FullName, repo.Name, repo.Private, now).
		Suffix("ON CONFLICT (full_name) DO UPDATE SET private = excluded.private").
		ToSql()
}

func (db *DB) selectRepositoryQuery(fullName string) (string, []any, error) {
	return db.builder.
		Select("full_name", "name", "private").
		From(tableRepositories).
		Where(sq.Eq{"full_name": fullName}).
		ToSql()
}
