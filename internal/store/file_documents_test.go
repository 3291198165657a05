package store

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	s := NewFileStorage(afero.NewMemMapFs(), logger.Nop())
	require.NoError(t, s.EnsureRepository(testContext(), models.Repository{FullName: "org/repo", Name: "repo", Private: true}))
	return s
}

func blob(repository, path, content string) models.StoredDocument {
	return models.StoredDocument{
		Repository: repository,
		Path:       path,
		Content:    []byte(content),
		SHA:        models.Version(utils.GitBlobSHA([]byte(content))),
		UpdatedAt:  time.Now().UTC(),
	}
}

func revisionFor(doc models.StoredDocument, message string) models.Revision {
	return models.Revision{Repository: doc.Repository, Path: doc.Path, SHA: doc.SHA, CommitID: utils.NewUUIDGenerator().GenerateCommitID(), Message: message, CreatedAt: doc.UpdatedAt}
}

func TestFileStorage_Repositories(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	repo, err := s.GetRepository(ctx, "org/repo")
	require.NoError(t, err)
	assert.Equal(t, models.Repository{FullName: "org/repo", Name: "repo", Private: true}, repo)

	require.NoError(t, s.EnsureRepository(ctx, models.Repository{FullName: "org/repo", Name: "repo", Private: false}))
	repo, err = s.GetRepository(ctx, "org/repo")
	require.NoError(t, err)
	assert.False(t, repo.Private)

	_, err = s.GetRepository(ctx, "org/other")
	assert.ErrorIs(t, err, ErrRepositoryNotFound)

	_, err = s.GetRepository(ctx, "not-a-repo")
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestFileStorage_CompareAndSwap(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	_, err := s.GetDocument(ctx, "org/repo", "posts.json")
	require.ErrorIs(t, err, ErrDocumentNotFound)

	first := blob("org/repo", "posts.json", `[]`)
	_, err = s.PutDocument(ctx, first, models.NoVersion, revisionFor(first, "create"))
	require.NoError(t, err)

	got, err := s.GetDocument(ctx, "org/repo", "posts.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got.Content)
	assert.Equal(t, first.SHA, got.SHA)

	// create over an existing document
	_, err = s.PutDocument(ctx, blob("org/repo", "posts.json", `[1]`), models.NoVersion, models.Revision{})
	assert.ErrorIs(t, err, ErrDocumentExists)

	second := blob("org/repo", "posts.json", `[{"id":"post-1"}]`)
	_, err = s.PutDocument(ctx, second, first.SHA, revisionFor(second, "Add post: hello"))
	require.NoError(t, err)
	assert.NotEqual(t, first.SHA, second.SHA)

	// stale version
	_, err = s.PutDocument(ctx, blob("org/repo", "posts.json", `[{"id":"post-2"}]`), first.SHA, models.Revision{})
	assert.ErrorIs(t, err, ErrVersionConflict)

	// expected version on a missing document
	_, err = s.PutDocument(ctx, blob("org/repo", "profile.json", `{}`), "deadbeef", models.Revision{})
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	got, err = s.GetDocument(ctx, "org/repo", "posts.json")
	require.NoError(t, err)
	assert.Equal(t, second.Content, got.Content)
}

func TestFileStorage_NestedPathsAndRevisions(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	img := blob("org/repo", "images/1700000000000.png", "\x89PNG")
	_, err := s.PutDocument(ctx, img, models.NoVersion, revisionFor(img, "Upload image: images/1700000000000.png"))
	require.NoError(t, err)

	v1 := blob("org/repo", "posts.json", `[]`)
	_, err = s.PutDocument(ctx, v1, models.NoVersion, revisionFor(v1, "first"))
	require.NoError(t, err)
	v2 := blob("org/repo", "posts.json", `[1]`)
	_, err = s.PutDocument(ctx, v2, v1.SHA, revisionFor(v2, "second"))
	require.NoError(t, err)

	revs, err := s.ListRevisions(ctx, "org/repo", "posts.json", 10)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "second", revs[0].Message)
	assert.Equal(t, "first", revs[1].Message)

	revs, err = s.ListRevisions(ctx, "org/repo", "posts.json", 1)
	require.NoError(t, err)
	assert.Len(t, revs, 1)

	revs, err = s.ListRevisions(ctx, "org/repo", "profile.json", 10)
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func TestFileStorage_RejectsEscapingPaths(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	for _, p := range []string{"", "/etc/passwd", "../other/repo", "images/../../x", `a\b`, "."} {
		_, err := s.GetDocument(ctx, "org/repo", p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)

		_, err = s.PutDocument(ctx, blob("org/repo", p, "x"), models.NoVersion, models.Revision{})
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestFileStorage_RejectsCollidingPaths(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	img := blob("org/repo", "images/1.png", "png")
	_, err := s.PutDocument(ctx, img, models.NoVersion, revisionFor(img, "upload"))
	require.NoError(t, err)

	for _, p := range []string{"images", "images/1.png/thumb.png"} {
		_, err = s.PutDocument(ctx, blob("org/repo", p, "x"), models.NoVersion, models.Revision{})
		assert.ErrorIs(t, err, ErrInvalidPath, p)

		_, err = s.GetDocument(ctx, "org/repo", p)
		assert.ErrorIs(t, err, ErrDocumentNotFound, p)
	}

	got, err := s.GetDocument(ctx, "org/repo", "images/1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got.Content)
}

func TestFileStorage_ConcurrentWritersOneWins(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := testContext()

	base := blob("org/repo", "posts.json", `[]`)
	_, err := s.PutDocument(ctx, base, models.NoVersion, revisionFor(base, "create"))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := blob("org/repo", "posts.json", string(rune('a'+i)))
			if _, err := s.PutDocument(ctx, doc, base.SHA, revisionFor(doc, "race")); err == nil {
				wins.Add(1)
			} else if assert.ErrorIs(t, err, ErrVersionConflict) {
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(7), conflicts.Load())
}

func TestNewFileStorages(t *testing.T) {
	storages := NewFileStorages(afero.NewMemMapFs(), logger.Nop())
	require.NotNil(t, storages.Documents)
	require.NotNil(t, storages.Repositories)
	assert.NoError(t, storages.Close())
}
