package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/content_store_mock.go -package=mock

import (
	"context"

	"github.com/kianlavi/onlyfan/models"
)

// ContentStore is the client of the versioned document store (a contents
// API speaking the GitHub wire format).
//
// Every call is a single network round trip and is never retried
// automatically. The credential is passed explicitly: an anonymous
// credential (empty token) sends no Authorization header.
type ContentStore interface {
	// FetchDocument reads the document at path in cred.Subject together
	// with its current version.
	//
	// Errors: [ErrNotFound], [ErrUnauthorized] / [ErrForbidden],
	// [ErrTransport] (including request timeouts and 5xx responses).
	FetchDocument(ctx context.Context, cred models.Credential, path string) (models.Document, error)

	// WriteDocument performs a conditional write. With an expected version
	// the write is rejected with [ErrVersionConflict] when the document
	// changed since; without one it only succeeds when no document exists
	// ([ErrAlreadyExists] otherwise).
	//
	// A transport failure is reported as [ErrWriteOutcomeUnknown]: the
	// request may or may not have been applied and the caller has to
	// re-fetch before deciding what to do.
	WriteDocument(ctx context.Context, cred models.Credential, req models.WriteRequest) (models.DocumentVersion, error)

	// VerifyAccess reports whether cred can write to cred.Subject. A
	// rejected or insufficient credential yields false with a nil error;
	// errors are reserved for failures that say nothing about the
	// credential (transport, unexpected responses).
	VerifyAccess(ctx context.Context, cred models.Credential) (bool, error)
}

// DocumentReader reads documents without a session credential. It is used
// to find the vault before unlock and to load the public feed.
type DocumentReader interface {
	// ReadDocument returns the document at path or [ErrNotFound].
	ReadDocument(ctx context.Context, path string) (models.Document, error)
}
