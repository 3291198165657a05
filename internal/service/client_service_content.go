package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/session"
	"github.com/kianlavi/onlyfan/internal/validators"
	"github.com/kianlavi/onlyfan/models"
)

const (
	postIDPrefix      = "post-"
	messageTextLimit  = 50
	defaultLikesMin   = 100
	defaultLikesRange = 2000
)

// ContentPaths are the repository locations of the content documents.
type ContentPaths struct {
	Posts     string
	Profile   string
	ImagesDir string
}

type contentService struct {
	store     adapter.ContentStore
	session   *session.Session
	validator validators.Validator
	paths     ContentPaths

	now   func() time.Time
	likes func() int

	mu      sync.Mutex
	posts   *models.PostsSnapshot
	profile *models.ProfileSnapshot

	logger *logger.Logger
}

// NewContentService constructs the ContentService of the unlocked session.
func NewContentService(
	store adapter.ContentStore,
	sess *session.Session,
	validator validators.Validator,
	paths ContentPaths,
	logger *logger.Logger,
) ContentService {
	return &contentService{
		store:     store,
		session:   sess,
		validator: validator,
		paths:     paths,
		now:       time.Now,
		likes:     func() int { return defaultLikesMin + rand.IntN(defaultLikesRange) },
		logger:    logger,
	}
}

// LoadPosts implements ContentService.
func (c *contentService) LoadPosts(ctx context.Context) (models.PostsSnapshot, error) {
	cred, err := c.session.Credential()
	if err != nil {
		return models.PostsSnapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadPostsLocked(ctx, cred)
}

func (c *contentService) loadPostsLocked(ctx context.Context, cred models.Credential) (models.PostsSnapshot, error) {
	doc, err := c.store.FetchDocument(ctx, cred, c.paths.Posts)
	if errors.Is(err, adapter.ErrNotFound) {
		// first publish will create the collection
		snapshot := models.PostsSnapshot{Posts: []models.Post{}, Version: models.NoVersion}
		c.posts = &snapshot
		return snapshot, nil
	}
	if err != nil {
		return models.PostsSnapshot{}, mapAdapterError(err)
	}

	posts := make([]models.Post, 0)
	if len(strings.TrimSpace(string(doc.Content))) > 0 {
		if err = json.Unmarshal(doc.Content, &posts); err != nil {
			return models.PostsSnapshot{}, fmt.Errorf("%w: %s: %w", ErrMalformedDocument, c.paths.Posts, err)
		}
	}
	if posts == nil {
		posts = []models.Post{}
	}

	snapshot := models.PostsSnapshot{Posts: posts, Version: doc.Version}
	c.posts = &snapshot
	return snapshot, nil
}

// LoadProfile implements ContentService.
func (c *contentService) LoadProfile(ctx context.Context) (models.ProfileSnapshot, error) {
	cred, err := c.session.Credential()
	if err != nil {
		return models.ProfileSnapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadProfileLocked(ctx, cred)
}

func (c *contentService) loadProfileLocked(ctx context.Context, cred models.Credential) (models.ProfileSnapshot, error) {
	doc, err := c.store.FetchDocument(ctx, cred, c.paths.Profile)
	if errors.Is(err, adapter.ErrNotFound) {
		snapshot := models.ProfileSnapshot{Version: models.NoVersion}
		c.profile = &snapshot
		return snapshot, nil
	}
	if err != nil {
		return models.ProfileSnapshot{}, mapAdapterError(err)
	}

	var profile models.Profile
	if len(strings.TrimSpace(string(doc.Content))) > 0 {
		if err = json.Unmarshal(doc.Content, &profile); err != nil {
			return models.ProfileSnapshot{}, fmt.Errorf("%w: %s: %w", ErrMalformedDocument, c.paths.Profile, err)
		}
	}

	snapshot := models.ProfileSnapshot{Profile: profile, Version: doc.Version}
	c.profile = &snapshot
	return snapshot, nil
}

// PublishPost implements ContentService.
func (c *contentService) PublishPost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	cred, err := c.session.Credential()
	if err != nil {
		return models.Post{}, err
	}
	if err = c.validator.Validate(ctx, draft); err != nil {
		return models.Post{}, mapValidationError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.posts == nil {
		if _, err = c.loadPostsLocked(ctx, cred); err != nil {
			return models.Post{}, err
		}
	}

	post := c.buildPost(draft)
	posts := append([]models.Post{post}, c.posts.Posts...)

	if err = c.writePostsLocked(ctx, cred, posts, addPostMessage(post.Text)); err != nil {
		return models.Post{}, err
	}

	c.logger.Info().
		Str("func", "contentService.PublishPost").
		Str("id", post.ID).
		Msg("post published")
	return post, nil
}

func (c *contentService) buildPost(draft models.PostDraft) models.Post {
	now := c.now()

	post := models.Post{
		ID:       postIDPrefix + strconv.FormatInt(now.UnixMilli(), 36),
		Text:     draft.Text,
		Tips:     draft.Tips,
		Comments: draft.Comments,
		Locked:   draft.Locked,
		Date:     now.UTC().Truncate(time.Second),
	}
	if draft.Image != "" {
		image := draft.Image
		post.Image = &image
	}
	if draft.Likes != nil {
		post.Likes = *draft.Likes
	} else {
		post.Likes = c.likes()
	}
	if draft.Locked {
		post.Price = draft.Price
	}
	if draft.Date != nil {
		post.Date = draft.Date.UTC()
	}
	return post
}

// addPostMessage returns "Add post: " with the first 50 runes of text.
func addPostMessage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Add post: new post"
	}
	if utf8.RuneCountInString(text) > messageTextLimit {
		text = string([]rune(text)[:messageTextLimit])
	}
	return "Add post: " + text
}

// DeletePost implements ContentService.
func (c *contentService) DeletePost(ctx context.Context, id string) error {
	cred, err := c.session.Credential()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.posts == nil {
		if _, err = c.loadPostsLocked(ctx, cred); err != nil {
			return err
		}
	}

	posts := make([]models.Post, 0, len(c.posts.Posts))
	for _, p := range c.posts.Posts {
		if p.ID != id {
			posts = append(posts, p)
		}
	}
	if len(posts) == len(c.posts.Posts) {
		return fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}

	return c.writePostsLocked(ctx, cred, posts, "Delete post "+id)
}

func (c *contentService) writePostsLocked(ctx context.Context, cred models.Credential, posts []models.Post, message string) error {
	content, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}

	written, err := c.store.WriteDocument(ctx, cred, models.WriteRequest{
		Path:            c.paths.Posts,
		Content:         content,
		ExpectedVersion: c.posts.Version,
		Message:         message,
	})
	if err != nil {
		dropOnRejectedWrite(c, err, &c.posts)
		return mapAdapterError(err)
	}

	c.posts = &models.PostsSnapshot{Posts: posts, Version: written.Version}
	return nil
}

// dropOnRejectedWrite forgets a cached snapshot whose version can no longer
// be trusted.
func dropOnRejectedWrite[T any](c *contentService, err error, cache **T) {
	if errors.Is(err, adapter.ErrVersionConflict) ||
		errors.Is(err, adapter.ErrAlreadyExists) ||
		errors.Is(err, adapter.ErrNotFound) ||
		errors.Is(err, adapter.ErrWriteOutcomeUnknown) {
		*cache = nil
		c.logger.Debug().Err(err).
			Str("func", "contentService.dropOnRejectedWrite").
			Msg("cached snapshot dropped, re-fetch required")
	}
}

// SaveProfile implements ContentService.
func (c *contentService) SaveProfile(ctx context.Context, profile models.Profile) (models.ProfileSnapshot, error) {
	cred, err := c.session.Credential()
	if err != nil {
		return models.ProfileSnapshot{}, err
	}
	if err = c.validator.Validate(ctx, profile); err != nil {
		return models.ProfileSnapshot{}, mapValidationError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profile == nil {
		if _, err = c.loadProfileLocked(ctx, cred); err != nil {
			return models.ProfileSnapshot{}, err
		}
	}

	content, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return models.ProfileSnapshot{}, fmt.Errorf("encode profile: %w", err)
	}

	written, err := c.store.WriteDocument(ctx, cred, models.WriteRequest{
		Path:            c.paths.Profile,
		Content:         content,
		ExpectedVersion: c.profile.Version,
		Message:         "Update profile",
	})
	if err != nil {
		dropOnRejectedWrite(c, err, &c.profile)
		return models.ProfileSnapshot{}, mapAdapterError(err)
	}

	snapshot := models.ProfileSnapshot{Profile: profile, Version: written.Version}
	c.profile = &snapshot
	return snapshot, nil
}

// UploadImage implements ContentService.
func (c *contentService) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	cred, err := c.session.Credential()
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return "", invalidInput(fmt.Errorf("image %q has no extension", filename))
	}
	if len(data) == 0 {
		return "", invalidInput(fmt.Errorf("image %q is empty", filename))
	}

	imagePath := path.Join(c.paths.ImagesDir, strconv.FormatInt(c.now().UnixMilli(), 10)+ext)
	_, err = c.store.WriteDocument(ctx, cred, models.WriteRequest{
		Path:    imagePath,
		Content: data,
		Message: "Upload image: " + imagePath,
	})
	if err != nil {
		return "", mapAdapterError(err)
	}

	return imagePath, nil
}

// Refresh implements ContentService.
func (c *contentService) Refresh(ctx context.Context) error {
	cred, err := c.session.Credential()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err = c.loadPostsLocked(ctx, cred); err != nil {
		return err
	}
	_, err = c.loadProfileLocked(ctx, cred)
	return err
}

// Reset implements ContentService.
func (c *contentService) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts, c.profile = nil, nil
}
