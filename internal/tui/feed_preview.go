package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/kianlavi/onlyfan/internal/feed"
)

const (
	feedWidth  = 64
	feedHeight = 20
)

type feedPreviewModel struct {
	viewport viewport.Model
	renderer *feed.Renderer
	loading  bool
}

func newFeedPreviewModel() feedPreviewModel {
	return feedPreviewModel{
		viewport: viewport.New(feedWidth+4, feedHeight),
		renderer: feed.NewRenderer(feedWidth),
		loading:  true,
	}
}

func (m feedPreviewModel) show(f feed.Feed, now time.Time) feedPreviewModel {
	m.viewport.SetContent(m.renderer.String(f, now))
	m.viewport.GotoTop()
	m.loading = false
	return m
}

func (m feedPreviewModel) resize(width, height int) feedPreviewModel {
	if width > 0 {
		m.viewport.Width = width
	}
	if height > 8 {
		m.viewport.Height = height - 8
	}
	return m
}

func (m feedPreviewModel) View() string {
	if m.loading {
		return renderPage("FEED", "Loading...", "esc back")
	}
	return renderPage("FEED", m.viewport.View(), "↑/↓ scroll  r reload  esc back")
}
