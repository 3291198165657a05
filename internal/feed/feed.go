package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/models"
)

var ErrMalformedFeed = errors.New("feed document is not valid JSON")

// Paths locates the feed documents.
type Paths struct {
	Posts   string
	Profile string
}

// Feed is the profile and posts as shown on the timeline.
type Feed struct {
	Profile models.Profile
	Posts   []models.Post
}

// Load reads the profile and posts with reader. Missing documents yield an
// empty profile or collection; any other read failure is returned.
func Load(ctx context.Context, reader adapter.DocumentReader, paths Paths) (Feed, error) {
	var f Feed
	if err := readJSON(ctx, reader, paths.Profile, &f.Profile); err != nil {
		return Feed{}, err
	}
	if err := readJSON(ctx, reader, paths.Posts, &f.Posts); err != nil {
		return Feed{}, err
	}
	if f.Posts == nil {
		f.Posts = []models.Post{}
	}
	f.Posts = Sort(f.Posts)
	return f, nil
}

func readJSON(ctx context.Context, reader adapter.DocumentReader, path string, v any) error {
	doc, err := reader.ReadDocument(ctx, path)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(doc.Content)) == "" {
		return nil
	}
	if err = json.Unmarshal(doc.Content, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedFeed, path, err)
	}
	return nil
}
