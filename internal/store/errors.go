package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when no document exists at the
	// requested repository path.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentExists is returned by a create (no expected version) when a
	// document already exists at the path.
	ErrDocumentExists = errors.New("document already exists")

	// ErrVersionConflict is returned when the expected version does not match
	// the current version of the document, meaning another writer changed it
	// since the caller last read it.
	ErrVersionConflict = errors.New("document version conflict")

	// ErrRepositoryNotFound is returned when the repository is not hosted by
	// this store.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrInvalidPath is returned for document paths that are empty, absolute
	// or escape the repository root.
	ErrInvalidPath = errors.New("invalid document path")

	// ErrUnknownDriver is returned when the configured database driver is not
	// supported.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a new
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
