package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kianlavi/onlyfan/models"
)

const (
	emptyFeedText   = "No posts yet"
	subscribeText   = "Subscribe to unlock"
	unlockPriceText = "Unlock for "
	tipText         = "Tip"
)

// Renderer draws a Feed as styled terminal text.
type Renderer struct {
	Width int

	name    lipgloss.Style
	muted   lipgloss.Style
	post    lipgloss.Style
	locked  lipgloss.Style
	tipped  lipgloss.Style
	counter lipgloss.Style
}

// NewRenderer constructs a Renderer wrapping post text at width columns
// (60 when width is not positive).
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 60
	}
	return &Renderer{
		Width:   width,
		name:    lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		post:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).Width(width),
		locked:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		tipped:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		counter: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

// Render writes the profile header followed by the posts, newest first.
func (r *Renderer) Render(w io.Writer, f Feed, now time.Time) error {
	_, err := io.WriteString(w, r.String(f, now))
	return err
}

// String returns what Render writes.
func (r *Renderer) String(f Feed, now time.Time) string {
	var b strings.Builder
	b.WriteString(r.Header(f.Profile, len(f.Posts)))
	b.WriteString("\n\n")

	if len(f.Posts) == 0 {
		b.WriteString(r.muted.Render(emptyFeedText))
		b.WriteString("\n")
		return b.String()
	}

	for _, p := range Sort(f.Posts) {
		b.WriteString(r.Post(f.Profile, p, now))
		b.WriteString("\n")
	}
	return b.String()
}

// Header renders the profile: name, handle, bio and the stats line.
func (r *Renderer) Header(p models.Profile, postCount int) string {
	lines := []string{r.name.Render(p.Name)}
	if p.Handle != "" {
		lines = append(lines, r.muted.Render(p.Handle))
	}
	if p.Bio != "" {
		lines = append(lines, lipgloss.NewStyle().Width(r.Width).Render(p.Bio))
	}
	lines = append(lines, fmt.Sprintf("%s posts · %s likes · %s fans",
		strconv.Itoa(postCount),
		FormatNumber(p.TotalLikes),
		FormatNumber(p.Subscribers),
	))
	return strings.Join(lines, "\n")
}

// Post renders a single post card.
func (r *Renderer) Post(profile models.Profile, p models.Post, now time.Time) string {
	lines := []string{
		r.name.Render(profile.Name) + "  " + r.muted.Render(TimeAgo(now, p.Date)),
	}
	if p.Text != "" {
		lines = append(lines, p.Text)
	}
	if p.Image != nil && *p.Image != "" {
		lines = append(lines, r.muted.Render("[image] "+*p.Image))
		if p.Locked {
			overlay := subscribeText
			if p.Price != nil && *p.Price > 0 {
				overlay += " · " + unlockPriceText + FormatMoney(*p.Price)
			}
			lines = append(lines, r.locked.Render(overlay))
		}
	}

	tip := tipText
	if p.Tips != nil && *p.Tips > 0 {
		tip = r.tipped.Render(FormatMoney(*p.Tips))
	}
	lines = append(lines, r.counter.Render(fmt.Sprintf("♥ %s   ✉ %d   ", FormatNumber(p.Likes), p.Comments))+tip)

	return r.post.Render(strings.Join(lines, "\n"))
}
