package tui

import (
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/models"
)

type probeDoneMsg struct {
	state models.AccessState
	err   error
}

// accessDoneMsg ends a Setup or Unlock attempt.
type accessDoneMsg struct {
	err error
}

type postsLoadedMsg struct {
	snapshot models.PostsSnapshot
	err      error
}

type postSavedMsg struct {
	post models.Post
	err  error
}

type postDeletedMsg struct {
	id  string
	err error
}

type profileLoadedMsg struct {
	snapshot models.ProfileSnapshot
	err      error
}

type profileSavedMsg struct {
	err error
}

type feedLoadedMsg struct {
	feed feed.Feed
	err  error
}

type copiedMsg struct {
	text string
	err  error
}

type clearStatusMsg struct{}
