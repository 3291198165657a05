package feed

import (
	"bytes"
	"testing"
	"time"

	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRenderer_EmptyFeed(t *testing.T) {
	out := NewRenderer(0).String(Feed{Profile: models.Profile{Name: "Ava"}}, time.Now())

	assert.Contains(t, out, "Ava")
	assert.Contains(t, out, "0 posts")
	assert.Contains(t, out, emptyFeedText)
}

func TestRenderer_Header(t *testing.T) {
	header := NewRenderer(60).Header(models.Profile{
		Name:        "Ava",
		Handle:      "@ava",
		Bio:         "hi",
		Subscribers: 12_400,
		TotalLikes:  1_500_000,
	}, 3)

	assert.Contains(t, header, "@ava")
	assert.Contains(t, header, "3 posts")
	assert.Contains(t, header, "1.5M likes")
	assert.Contains(t, header, "12.4K fans")
}

func TestRenderer_Post(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	profile := models.Profile{Name: "Ava"}

	tests := []struct {
		name        string
		post        models.Post
		contains    []string
		notContains []string
	}{
		{
			name:        "plain text",
			post:        models.Post{Text: "hello", Likes: 1200, Comments: 4, Date: now.Add(-2 * time.Hour)},
			contains:    []string{"hello", "2h ago", "1.2K", "4", tipText},
			notContains: []string{subscribeText},
		},
		{
			name: "locked with price",
			post: models.Post{Image: ptr("images/1.png"), Locked: true, Price: ptr(4.99), Date: now},
			contains: []string{
				"images/1.png",
				subscribeText,
				"$4.99",
				"just now",
			},
		},
		{
			name:        "locked without price",
			post:        models.Post{Image: ptr("images/1.png"), Locked: true, Date: now},
			contains:    []string{subscribeText},
			notContains: []string{unlockPriceText},
		},
		{
			name:        "locked text only has no overlay",
			post:        models.Post{Text: "secret", Locked: true, Date: now},
			notContains: []string{subscribeText},
		},
		{
			name:        "tipped",
			post:        models.Post{Text: "thanks", Tips: ptr(25.5), Date: now},
			contains:    []string{"$25.50"},
			notContains: []string{tipText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewRenderer(60).Post(profile, tt.post, now)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderer_RenderOrdersPosts(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	f := Feed{
		Profile: models.Profile{Name: "Ava"},
		Posts: []models.Post{
			{ID: "a", Text: "older post", Date: now.Add(-72 * time.Hour)},
			{ID: "b", Text: "newer post", Date: now.Add(-time.Hour)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(60).Render(&buf, f, now))

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("newer post")), bytes.Index([]byte(out), []byte("older post")))
	assert.Contains(t, out, "2 posts")
}
