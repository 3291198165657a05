package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectDocumentSQL    = `SELECT repository, path, content, sha, updated_at FROM documents WHERE repository = $1 AND path = $2`
	selectDocumentSHASQL = `SELECT sha FROM documents WHERE repository = $1 AND path = $2`
	updateDocumentSQL    = `UPDATE documents SET content = $1, sha = $2, updated_at = $3 WHERE repository = $4 AND path = $5 AND sha = $6`
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB for tests.
func newDBFromSQL(db *sql.DB, driver string) *DB {
	classificator := ErrorClassificator(NewPostgresErrorClassifier())
	if driver == driverSQLite {
		classificator = NewSQLiteErrorClassifier()
	}
	return newDB(db, driver, classificator, logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testDocument(content string) models.StoredDocument {
	return models.StoredDocument{
		Repository: "org/repo",
		Path:       "posts.json",
		Content:    []byte(content),
		SHA:        models.Version("sha-" + content),
		UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func testRevision(doc models.StoredDocument) models.Revision {
	return models.Revision{
		Repository: doc.Repository,
		Path:       doc.Path,
		SHA:        doc.SHA,
		CommitID:   "commit-1",
		Message:    "Add post: hello",
		CreatedAt:  doc.UpdatedAt,
	}
}

func TestGetDocument(t *testing.T) {
	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.StoredDocument
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
					WithArgs("org/repo", "posts.json").
					WillReturnRows(sqlmock.NewRows([]string{"repository", "path", "content", "sha", "updated_at"}).
						AddRow("org/repo", "posts.json", []byte(`[]`), "abc", updated))
			},
			want: models.StoredDocument{Repository: "org/repo", Path: "posts.json", Content: []byte(`[]`), SHA: "abc", UpdatedAt: updated},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
					WithArgs("org/repo", "posts.json").
					WillReturnRows(sqlmock.NewRows([]string{"repository", "path", "content", "sha", "updated_at"}))
			},
			wantErr: ErrDocumentNotFound,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrScanningRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tt.setup(mock)

			repo := NewDocumentRepository(newDBFromSQL(db, driverPostgres), logger.Nop())
			got, err := repo.GetDocument(testContext(), "org/repo", "posts.json")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPutDocument(t *testing.T) {
	doc := testDocument("new")
	rev := testRevision(doc)
	shaRows := func(sha ...string) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"sha"})
		for _, s := range sha {
			rows.AddRow(s)
		}
		return rows
	}

	tests := []struct {
		name     string
		expected models.Version
		setup    func(mock sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "create",
			expected: models.NoVersion,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WithArgs("org/repo", "posts.json").WillReturnRows(shaRows())
				mock.ExpectExec(`INSERT INTO documents`).
					WithArgs("org/repo", "posts.json", []byte("new"), "sha-new", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO revisions`).
					WithArgs("org/repo", "posts.json", "sha-new", "commit-1", "Add post: hello", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:     "update with current version",
			expected: "v1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows("v1"))
				mock.ExpectExec(regexp.QuoteMeta(updateDocumentSQL)).
					WithArgs([]byte("new"), "sha-new", sqlmock.AnyArg(), "org/repo", "posts.json", "v1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO revisions`).WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:     "stale version",
			expected: "v1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows("v2"))
				mock.ExpectRollback()
			},
			wantErr: ErrVersionConflict,
		},
		{
			name:     "create over existing document",
			expected: models.NoVersion,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows("v1"))
				mock.ExpectRollback()
			},
			wantErr: ErrDocumentExists,
		},
		{
			name:     "update of missing document",
			expected: "v1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows())
				mock.ExpectRollback()
			},
			wantErr: ErrDocumentNotFound,
		},
		{
			name:     "concurrent update between read and write",
			expected: "v1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows("v1"))
				mock.ExpectExec(regexp.QuoteMeta(updateDocumentSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrVersionConflict,
		},
		{
			name:     "concurrent create between read and insert",
			expected: models.NoVersion,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows())
				mock.ExpectExec(`INSERT INTO documents`).WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
				mock.ExpectRollback()
			},
			wantErr: ErrDocumentExists,
		},
		{
			name:     "begin fails",
			expected: models.NoVersion,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name:     "commit fails",
			expected: models.NoVersion,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(shaRows())
				mock.ExpectExec(`INSERT INTO documents`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO revisions`).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(errors.New("disk full"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tt.setup(mock)

			repo := NewDocumentRepository(newDBFromSQL(db, driverPostgres), logger.Nop())
			got, err := repo.PutDocument(testContext(), doc, tt.expected, rev)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, doc, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPutDocument_RetriesSerializationFailure(t *testing.T) {
	db, mock := newTestDB(t)
	doc := testDocument("new")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSHASQL)).WillReturnRows(sqlmock.NewRows([]string{"sha"}))
	mock.ExpectExec(`INSERT INTO documents`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO revisions`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewDocumentRepository(newDBFromSQL(db, driverPostgres), logger.Nop())
	_, err := repo.PutDocument(testContext(), doc, models.NoVersion, testRevision(doc))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutDocument_SQLitePlaceholders(t *testing.T) {
	db, mock := newTestDB(t)
	doc := testDocument("new")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sha FROM documents WHERE repository = ? AND path = ?`)).
		WillReturnRows(sqlmock.NewRows([]string{"sha"}).AddRow("v1"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE documents SET content = ?, sha = ?, updated_at = ? WHERE repository = ? AND path = ? AND sha = ?`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO revisions`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewDocumentRepository(newDBFromSQL(db, driverSQLite), logger.Nop())
	_, err := repo.PutDocument(testContext(), doc, "v1", testRevision(doc))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRevisions(t *testing.T) {
	db, mock := newTestDB(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT repository, path, sha, commit_id, message, created_at FROM revisions WHERE repository = \$1 AND path = \$2 ORDER BY id DESC LIMIT 5`).
		WithArgs("org/repo", "posts.json").
		WillReturnRows(sqlmock.NewRows([]string{"repository", "path", "sha", "commit_id", "message", "created_at"}).
			AddRow("org/repo", "posts.json", "v2", "c2", "Delete post post-1", created).
			AddRow("org/repo", "posts.json", "v1", "c1", "Add post: hello", created))

	repo := NewDocumentRepository(newDBFromSQL(db, driverPostgres), logger.Nop())
	revs, err := repo.ListRevisions(testContext(), "org/repo", "posts.json", 5)

	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, models.Version("v2"), revs[0].SHA)
	assert.Equal(t, "Add post: hello", revs[1].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryRegistry(t *testing.T) {
	db, mock := newTestDB(t)
	registry := NewRepositoryRegistry(newDBFromSQL(db, driverPostgres), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO repositories (full_name,name,private,created_at) VALUES ($1,$2,$3,$4) ON CONFLICT (full_name) DO UPDATE SET private = excluded.private`)).
		WithArgs("org/repo", "repo", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, registry.EnsureRepository(testContext(), models.Repository{FullName: "org/repo", Name: "repo"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT full_name, name, private FROM repositories WHERE full_name = $1`)).
		WithArgs("org/repo").
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "name", "private"}).AddRow("org/repo", "repo", false))
	repo, err := registry.GetRepository(testContext(), "org/repo")
	require.NoError(t, err)
	assert.Equal(t, models.Repository{FullName: "org/repo", Name: "repo"}, repo)

	mock.ExpectQuery(`FROM repositories`).
		WithArgs("org/missing").
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "name", "private"}))
	_, err = registry.GetRepository(testContext(), "org/missing")
	assert.ErrorIs(t, err, ErrRepositoryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
