package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/spf13/afero"
)

// Storages bundles the repositories of the self-hosted store.
type Storages struct {
	Documents    DocumentRepository
	Repositories RepositoryRegistry

	db    *DB
	close func() error
}

// NewStorages opens the backend selected by cfg. Files.RootDir takes
// precedence; otherwise a database is opened with DB.Driver and migrated.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.Files.RootDir != "" {
		osFs := afero.NewOsFs()
		if err := osFs.MkdirAll(cfg.Files.RootDir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating storage root: %w", err)
		}
		log.Info().Str("func", "NewStorages").Str("root", cfg.Files.RootDir).Msg("using filesystem storage")
		return NewFileStorages(afero.NewBasePathFs(osFs, cfg.Files.RootDir), log), nil
	}

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case driverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case driverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLStorages(db, log), nil
}

// NewSQLStorages wires the SQL repositories over an open database.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Documents:    NewDocumentRepository(db, log),
		Repositories: NewRepositoryRegistry(db, log),
		db:           db,
		close:        db.Close,
	}
}

// NewFileStorages wires a [FileStorage] over fsys.
func NewFileStorages(fsys afero.Fs, log *logger.Logger) *Storages {
	fileStorage := NewFileStorage(fsys, log)
	return &Storages{
		Documents:    fileStorage,
		Repositories: fileStorage,
		close:        func() error { return nil },
	}
}

// Close releases the backend.
func (s *Storages) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// SQLDB returns the database handle and driver name of a SQL backend, or
// nil for the filesystem backend.
func (s *Storages) SQLDB() (*sql.DB, string) {
	if s.db == nil {
		return nil, ""
	}
	return s.db.DB, s.db.driver
}
