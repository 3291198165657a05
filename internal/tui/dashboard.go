package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/models"
)

type dashboardModel struct {
	subject string
	posts   []models.Post
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	lastErr string
}

func newDashboardModel() dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return dashboardModel{spinner: s, loading: true}
}

func (m dashboardModel) current() (models.Post, bool) {
	if len(m.posts) == 0 || m.idx < 0 || m.idx >= len(m.posts) {
		return models.Post{}, false
	}
	return m.posts[m.idx], true
}

func (m dashboardModel) setPosts(posts []models.Post) dashboardModel {
	m.posts = posts
	if m.idx >= len(m.posts) {
		m.idx = len(m.posts) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	return m
}

func postLabel(p models.Post) string {
	var tags []string
	if p.Image != nil && *p.Image != "" {
		tags = append(tags, "img")
	}
	if p.Locked {
		tag := "locked"
		if p.Price != nil {
			tag += " " + feed.FormatMoney(*p.Price)
		}
		tags = append(tags, tag)
	}

	text := p.Text
	if text == "" {
		text = "(no text)"
	}
	label := fitText(firstLine(text), 40)
	if len(tags) > 0 {
		label += "  [" + strings.Join(tags, ", ") + "]"
	}
	return label
}

func (m dashboardModel) View(now time.Time) string {
	var b strings.Builder

	header := m.subject
	if m.loading {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.posts) == 0:
		b.WriteString("Loading...\n")
	case len(m.posts) == 0:
		b.WriteString("No posts yet\n")
	default:
		for i, p := range m.posts {
			cursor := "  "
			line := fmt.Sprintf("%-8s %s", feed.TimeAgo(now, p.Date), postLabel(p))
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.lastErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.lastErr) + "\n")
	}

	return renderPage("POSTS", b.String(),
		"n new  d delete  y copy id  p profile  f feed  r reload  l logout  v about  q quit")
}
