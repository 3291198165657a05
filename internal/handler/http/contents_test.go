package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/kianlavi/onlyfan/internal/metrics"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsPath = "/repos/org/site/contents/site/data/posts.json"

func decodePut(t *testing.T, body []byte) models.ContentsPutResponse {
	t.Helper()
	var out models.ContentsPutResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestContents_ConditionalWrites(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	// create
	resp, body := s.do(t, http.MethodPut, postsPath, push, putBody("[]", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decodePut(t, body)
	assert.Equal(t, utils.GitBlobSHA([]byte("[]")), created.Content.SHA)
	assert.Equal(t, "posts.json", created.Content.Name)
	assert.Equal(t, "site/data/posts.json", created.Content.Path)
	assert.Equal(t, "test write", created.Commit.Message)
	assert.NotEmpty(t, created.Commit.SHA)

	// create again
	resp, _ = s.do(t, http.MethodPut, postsPath, push, putBody("[1]", ""))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// update at the current version
	resp, body = s.do(t, http.MethodPut, postsPath, push, putBody("[1]", created.Content.SHA))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decodePut(t, body)
	assert.NotEqual(t, created.Content.SHA, updated.Content.SHA)

	// stale version loses
	resp, _ = s.do(t, http.MethodPut, postsPath, push, putBody("[2]", created.Content.SHA))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// identical content at the current version keeps the version
	resp, body = s.do(t, http.MethodPut, postsPath, push, putBody("[1]", updated.Content.SHA))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, updated.Content.SHA, decodePut(t, body).Content.SHA)

	// version for a document that does not exist
	resp, _ = s.do(t, http.MethodPut, "/repos/org/site/contents/missing.json", push, putBody("{}", updated.Content.SHA))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContents_Get(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)
	content := strings.Repeat("0123456789", 10)

	resp, _ := s.do(t, http.MethodPut, postsPath, push, putBody(content, ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, postsPath, push, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var file models.ContentsFile
	require.NoError(t, json.Unmarshal(body, &file))
	assert.Equal(t, "file", file.Type)
	assert.Equal(t, "base64", file.Encoding)
	assert.Equal(t, len(content), file.Size)
	assert.Equal(t, `"`+file.SHA+`"`, resp.Header.Get("ETag"))

	for _, line := range strings.Split(strings.TrimSuffix(file.Content, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), base64LineLength)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	require.NoError(t, err)
	assert.Equal(t, content, string(decoded))

	resp, _ = s.do(t, http.MethodGet, "/repos/org/site/contents/none.json", push, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContents_EscapedPath(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	resp, body := s.do(t, http.MethodPut, "/repos/org/site/contents/images/my%20pic.png", push, putBody("png", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "images/my pic.png", decodePut(t, body).Content.Path)

	resp, _ = s.do(t, http.MethodGet, "/repos/org/site/contents/images/my%20pic.png", push, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContents_Authorization(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)
	pull := s.token(t, privateRepo, models.ScopePull)
	other := s.token(t, publicRepo, models.ScopePush)

	resp, _ := s.do(t, http.MethodPut, postsPath, push, putBody("[]", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPut, "/repos/org/public/contents/feed.json", other, putBody("[]", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous read of private repo is hidden", http.MethodGet, postsPath, "", http.StatusNotFound},
		{"anonymous read of public repo", http.MethodGet, "/repos/org/public/contents/feed.json", "", http.StatusOK},
		{"anonymous write", http.MethodPut, "/repos/org/public/contents/x.json", "", http.StatusUnauthorized},
		{"pull token reads", http.MethodGet, postsPath, pull, http.StatusOK},
		{"pull token cannot write", http.MethodPut, "/repos/org/site/contents/x.json", pull, http.StatusForbidden},
		{"token of another repository", http.MethodGet, postsPath, other, http.StatusNotFound},
		{"garbage token", http.MethodGet, postsPath, "garbage", http.StatusUnauthorized},
		{"unknown repository", http.MethodGet, "/repos/org/none/contents/a.json", push, http.StatusNotFound},
		{"escaping path", http.MethodGet, "/repos/org/site/contents/a/../../b", push, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body any
			if tt.method == http.MethodPut {
				body = putBody("{}", "")
			}
			resp, _ := s.do(t, tt.method, tt.path, tt.token, body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestContents_InvalidBody(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	resp, _ := s.do(t, http.MethodPut, postsPath, push, map[string]any{"content": 42})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, postsPath, push, models.ContentsPutRequest{Message: "m", Content: "%%%"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, postsPath, push, models.ContentsPutRequest{Content: "e30="})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "empty commit message")
}

func TestRepository_Permissions(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantPush *bool
	}{
		{name: "push token", path: "/repos/org/site", token: s.token(t, privateRepo, models.ScopePush), wantCode: http.StatusOK, wantPush: ptr(true)},
		{name: "pull token", path: "/repos/org/site", token: s.token(t, privateRepo, models.ScopePull), wantCode: http.StatusOK, wantPush: ptr(false)},
		{name: "anonymous public", path: "/repos/org/public", wantCode: http.StatusOK},
		{name: "anonymous private", path: "/repos/org/site", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodGet, tt.path, tt.token, nil)
			require.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantCode != http.StatusOK {
				return
			}

			var repo models.Repository
			require.NoError(t, json.Unmarshal(body, &repo))
			if tt.wantPush == nil {
				assert.Nil(t, repo.Permissions)
				return
			}
			require.NotNil(t, repo.Permissions)
			assert.Equal(t, *tt.wantPush, repo.Permissions.Push)
		})
	}
}

func TestCommits_List(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	resp, body := s.do(t, http.MethodPut, postsPath, push, models.ContentsPutRequest{Message: "Add post: one", Content: "WzFd"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodePut(t, body)
	resp, _ = s.do(t, http.MethodPut, postsPath, push, models.ContentsPutRequest{Message: "Delete post post-1", Content: "W10=", SHA: first.Content.SHA})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/repos/org/site/commits?path=site/data/posts.json", push, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var commits []models.RepositoryCommit
	require.NoError(t, json.Unmarshal(body, &commits))
	require.Len(t, commits, 2)
	assert.Equal(t, "Delete post post-1", commits[0].Commit.Message)
	assert.Equal(t, "Add post: one", commits[1].Commit.Message)
	assert.Equal(t, first.Commit.SHA, commits[1].SHA)

	resp, body = s.do(t, http.MethodGet, "/repos/org/site/commits?path=site/data/posts.json&per_page=1", push, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &commits))
	assert.Len(t, commits, 1)
}

func TestContents_PutOverDirectoryOrDocumentIsBadRequest(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	resp, _ := s.do(t, http.MethodPut, postsPath, push, putBody("[]", ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, p := range []string{"/repos/org/site/contents/site/data", postsPath + "/nested.json"} {
		resp, _ = s.do(t, http.MethodPut, p, push, putBody("x", ""))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, p)
	}
}

func TestContents_WriteMetrics(t *testing.T) {
	s := newTestStore(t)
	push := s.token(t, privateRepo, models.ScopePush)

	s.do(t, http.MethodPut, postsPath, push, putBody("[]", ""))
	s.do(t, http.MethodPut, postsPath, push, putBody("[]", ""))
	s.do(t, http.MethodPut, postsPath, push, putBody("[]", "stale"))

	resp, body := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, `onlyfan_document_writes_total{result="`+metrics.WriteCreated+`"} 1`)
	assert.Contains(t, text, `onlyfan_document_writes_total{result="`+metrics.WriteExists+`"} 1`)
	assert.Contains(t, text, `onlyfan_document_writes_total{result="`+metrics.WriteConflict+`"} 1`)
}

func ptr[T any](v T) *T {
	return &v
}
