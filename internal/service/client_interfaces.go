package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/kianlavi/onlyfan/models"
)

// AccessService is the bootstrap/unlock state machine of the admin client.
//
//	Uninitialized  --Setup-->  Unlocked
//	AwaitingPassword --Unlock--> Unlocked
//	Unlocked --Logout--> AwaitingPassword
//
// Failed operations move to Locked (or back to AwaitingPassword for a wrong
// password, Uninitialized for a missing vault) and never leave a credential
// in memory.
type AccessService interface {
	// Probe selects the initial state from the presence of the vault
	// document. A missing vault is not an error.
	Probe(ctx context.Context) (models.AccessState, error)

	// Setup verifies the raw credential against the subject, seals it under
	// the password and commits the envelope at the vault path. An existing
	// envelope is replaced conditionally on the version it was read at.
	Setup(ctx context.Context, req models.SetupRequest) error

	// Unlock fetches and opens the vault with the password, then checks the
	// recovered credential is still accepted by the store.
	Unlock(ctx context.Context, req models.UnlockRequest) error

	// Logout destroys the session credential unconditionally.
	Logout(ctx context.Context)

	// State returns the current state and, for Locked, the failure that
	// caused it.
	State() (models.AccessState, error)

	// Subject returns the repository of the active session, or "".
	Subject() string
}

// ContentService reads and writes the posts collection, the profile record
// and uploaded images on behalf of the unlocked session. Every call fails
// with ErrNoSession when no session is active.
//
// Loaded snapshots are cached; writes present the cached version and a
// rejected write drops the cache so the next call re-reads.
type ContentService interface {
	LoadPosts(ctx context.Context) (models.PostsSnapshot, error)
	LoadProfile(ctx context.Context) (models.ProfileSnapshot, error)

	// PublishPost builds a post from draft and prepends it to the collection.
	PublishPost(ctx context.Context, draft models.PostDraft) (models.Post, error)

	// DeletePost removes the post with id; ErrPostNotFound when it is not in
	// the collection.
	DeletePost(ctx context.Context, id string) error

	SaveProfile(ctx context.Context, profile models.Profile) (models.ProfileSnapshot, error)

	// UploadImage commits data under the images directory with create
	// semantics and returns its repository path.
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)

	// Refresh re-reads posts and profile, replacing the cache.
	Refresh(ctx context.Context) error

	// Reset drops every cached snapshot.
	Reset()
}

// RefreshJob periodically calls ContentService.Refresh while a session is
// active.
type RefreshJob interface {
	// Start launches the background goroutine, refreshing every interval
	// (one minute when interval is not positive). A running job is stopped
	// first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and waits for it.
	Stop()
}
