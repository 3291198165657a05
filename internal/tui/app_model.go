package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/workers"
	"github.com/kianlavi/onlyfan/models"
)

type screen int

const (
	screenProbe screen = iota
	screenSetup
	screenUnlock
	screenDashboard
	screenPostForm
	screenProfileForm
	screenFeed
)

const defaultStatusTTL = 2 * time.Second

var writeClipboard = clipboard.WriteAll

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	workers   *workers.Workers
	loadFeed  func(context.Context) (feed.Feed, error)
	build     models.AppBuildInfo
	subject   string
	now       func() time.Time
	statusTTL time.Duration

	currentScreen screen
	probeSpinner  spinner.Model
	setup         setupModel
	unlock        unlockModel
	dashboard     dashboardModel
	postForm      postFormModel
	profileForm   profileFormModel
	feedPreview   feedPreviewModel

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
	showBuildInfo bool

	quit bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, w *workers.Workers, cfg Config) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	loadFeed := func(ctx context.Context) (feed.Feed, error) {
		if cfg.FeedReader == nil {
			return feed.Feed{}, errors.New("feed source is not configured")
		}
		return feed.Load(ctx, cfg.FeedReader, cfg.FeedPaths)
	}

	return appModel{
		ctx:           ctx,
		services:      services,
		workers:       w,
		loadFeed:      loadFeed,
		build:         cfg.Build,
		subject:       cfg.Subject,
		now:           time.Now,
		statusTTL:     defaultStatusTTL,
		currentScreen: screenProbe,
		probeSpinner:  s,
		setup:         newSetupModel(cfg.Subject),
		unlock:        newUnlockModel(),
		dashboard:     newDashboardModel(),
		feedPreview:   newFeedPreviewModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.probeSpinner.Tick, m.cmdProbe())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			m.quit = true
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				id := m.pendingDelete
				m.pendingDelete = ""
				if id == "" {
					return m, nil
				}
				m.dashboard.loading = true
				return m, tea.Batch(m.dashboard.spinner.Tick, m.cmdDeletePost(id))
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.feedPreview = m.feedPreview.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		return m.updateSpinners(msg)
	case probeDoneMsg:
		return m.onProbe(msg)
	case accessDoneMsg:
		return m.onAccess(msg)
	case postsLoadedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			return m.onContentError(msg.err)
		}
		m.dashboard.lastErr = ""
		m.dashboard = m.dashboard.setPosts(msg.snapshot.Posts)
		return m, nil
	case postSavedMsg:
		m.postForm.form.submitting = false
		if msg.err != nil {
			// the form keeps its values; a conflict already dropped the
			// cached collection, so submitting again re-reads it
			m.showErrorf(humanize(msg.err))
			return m, nil
		}
		m.currentScreen = screenDashboard
		m.dashboard.status = "Published " + msg.post.ID
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadPosts(), m.cmdClearStatus())
	case postDeletedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			m.showErrorf(humanize(msg.err))
			if errors.Is(msg.err, service.ErrVersionConflict) {
				m.dashboard.loading = true
				return m, m.cmdLoadPosts()
			}
			return m, nil
		}
		m.dashboard.status = "Deleted " + msg.id
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadPosts(), m.cmdClearStatus())
	case profileLoadedMsg:
		if msg.err != nil {
			m.currentScreen = screenDashboard
			return m.onContentError(msg.err)
		}
		m.profileForm = m.profileForm.fill(msg.snapshot.Profile)
		return m, nil
	case profileSavedMsg:
		m.profileForm.form.submitting = false
		if msg.err != nil {
			m.showErrorf(humanize(msg.err))
			return m, nil
		}
		m.currentScreen = screenDashboard
		m.dashboard.status = "Profile saved"
		return m, m.cmdClearStatus()
	case feedLoadedMsg:
		if msg.err != nil {
			m.currentScreen = screenDashboard
			m.showErrorf(humanize(msg.err))
			return m, nil
		}
		m.feedPreview = m.feedPreview.show(msg.feed, m.now())
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf("copy to clipboard: " + msg.err.Error())
			return m, nil
		}
		m.dashboard.status = "Copied " + msg.text
		return m, m.cmdClearStatus()
	case clearStatusMsg:
		m.dashboard.status = ""
		return m, nil
	}

	switch m.currentScreen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenUnlock:
		return m.updateUnlock(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	case screenPostForm:
		return m.updatePostForm(msg)
	case screenProfileForm:
		return m.updateProfileForm(msg)
	case screenFeed:
		return m.updateFeed(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.build, m.services.Access.Subject()))
	}

	var body string
	switch m.currentScreen {
	case screenProbe:
		body = renderPage("ONLYFAN ADMIN", m.probeSpinner.View()+" Looking for the admin config...", "")
	case screenSetup:
		body = m.setup.View()
	case screenUnlock:
		body = m.unlock.View()
	case screenDashboard:
		body = m.dashboard.View(m.now())
	case screenPostForm:
		body = m.postForm.View()
	case screenProfileForm:
		body = m.profileForm.View()
	case screenFeed:
		body = m.feedPreview.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m appModel) updateSpinners(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.currentScreen == screenProbe:
		m.probeSpinner, cmd = m.probeSpinner.Update(msg)
	case m.dashboard.loading:
		m.dashboard.spinner, cmd = m.dashboard.spinner.Update(msg)
	}
	return m, cmd
}

func (m appModel) onProbe(msg probeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.currentScreen = screenUnlock
		m.showErrorf(humanize(msg.err))
		return m, nil
	}

	switch msg.state {
	case models.StateUninitialized:
		m.currentScreen = screenSetup
	case models.StateUnlocked:
		return m.enterDashboard()
	default:
		m.currentScreen = screenUnlock
	}
	return m, nil
}

func (m appModel) onAccess(msg accessDoneMsg) (tea.Model, tea.Cmd) {
	m.setup.form.submitting = false
	m.unlock.form.submitting = false

	if msg.err == nil {
		// nothing typed stays in memory after a successful attempt
		m.setup = newSetupModel(m.subject)
		m.unlock = newUnlockModel()
		return m.enterDashboard()
	}

	// typed passwords are dropped whichever screen comes next
	m.setup = m.setup.clearSecrets()
	m.unlock = newUnlockModel()

	m.showErrorf(humanize(msg.err))
	if state, _ := m.services.Access.State(); state == models.StateUninitialized {
		m.currentScreen = screenSetup
	}
	return m, nil
}

// onContentError reports a failed read. A lost session sends the user back
// to the unlock screen.
func (m appModel) onContentError(err error) (tea.Model, tea.Cmd) {
	m.showErrorf(humanize(err))
	if errors.Is(err, service.ErrNoSession) {
		return m.logout()
	}
	m.dashboard.lastErr = humanize(err)
	return m, nil
}

func (m appModel) enterDashboard() (tea.Model, tea.Cmd) {
	m.currentScreen = screenDashboard
	m.dashboard = newDashboardModel()
	m.dashboard.subject = m.services.Access.Subject()
	if m.workers != nil {
		m.workers.Start(m.ctx)
	}
	return m, tea.Batch(m.dashboard.spinner.Tick, m.cmdLoadPosts())
}

func (m appModel) logout() (tea.Model, tea.Cmd) {
	if m.workers != nil {
		m.workers.Stop()
	}
	m.services.Logout(m.ctx)

	m.dashboard = newDashboardModel()
	m.unlock = newUnlockModel()
	m.currentScreen = screenUnlock
	return m, nil
}

func (m appModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.setup.form = m.setup.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setup.form = m.setup.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.setup.form.submitting {
				return m, nil
			}
			m.setup.form.submitting = true
			return m, m.cmdSetup(m.setup.request())
		}
	}

	var cmd tea.Cmd
	m.setup.form, cmd = m.setup.form.update(msg)
	return m, cmd
}

func (m appModel) updateUnlock(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		if m.unlock.form.submitting {
			return m, nil
		}
		m.unlock.form.submitting = true
		return m, m.cmdUnlock(m.unlock.request())
	}

	var cmd tea.Cmd
	m.unlock.form, cmd = m.unlock.form.update(msg)
	return m, cmd
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dashboard.idx > 0 {
			m.dashboard.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.dashboard.idx < len(m.dashboard.posts)-1 {
			m.dashboard.idx++
		}
	case key.Matches(keyMsg, keys.newPost):
		m.postForm = newPostFormModel()
		m.currentScreen = screenPostForm
	case key.Matches(keyMsg, keys.delete):
		post, ok := m.dashboard.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = fitText(firstLine(post.Text), 30)
		if m.confirm.message == "" {
			m.confirm.message = post.ID
		}
		m.pendingDelete = post.ID
	case key.Matches(keyMsg, keys.copy):
		post, ok := m.dashboard.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(post.ID)
	case key.Matches(keyMsg, keys.profile):
		m.profileForm = newProfileFormModel()
		m.currentScreen = screenProfileForm
		return m, m.cmdLoadProfile()
	case key.Matches(keyMsg, keys.feed):
		m.feedPreview.loading = true
		m.currentScreen = screenFeed
		return m, m.cmdLoadFeed()
	case key.Matches(keyMsg, keys.reload):
		if m.dashboard.loading {
			return m, nil
		}
		m.dashboard.loading = true
		return m, tea.Batch(m.dashboard.spinner.Tick, m.cmdLoadPosts())
	case key.Matches(keyMsg, keys.logout):
		return m.logout()
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updatePostForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenDashboard
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.postForm.form = m.postForm.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.postForm.form = m.postForm.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.postForm.form.submitting {
				return m, nil
			}
			draft, imageFile, err := m.postForm.draft()
			if err != nil {
				m.showErrorf(humanize(err))
				return m, nil
			}
			m.postForm.form.submitting = true
			return m, m.cmdPublish(draft, imageFile)
		}
	}

	var cmd tea.Cmd
	m.postForm.form, cmd = m.postForm.form.update(msg)
	return m, cmd
}

func (m appModel) updateProfileForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenDashboard
			return m, nil
		case m.profileForm.loading:
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.profileForm.form = m.profileForm.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.profileForm.form = m.profileForm.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.profileForm.form.submitting {
				return m, nil
			}
			profile, err := m.profileForm.profile()
			if err != nil {
				m.showErrorf(humanize(err))
				return m, nil
			}
			m.profileForm.form.submitting = true
			return m, m.cmdSaveProfile(profile)
		}
	}

	var cmd tea.Cmd
	m.profileForm.form, cmd = m.profileForm.form.update(msg)
	return m, cmd
}

func (m appModel) updateFeed(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenDashboard
			return m, nil
		case key.Matches(keyMsg, keys.reload):
			m.feedPreview.loading = true
			return m, m.cmdLoadFeed()
		case key.Matches(keyMsg, keys.quit):
			m.currentScreen = screenDashboard
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.feedPreview.viewport, cmd = m.feedPreview.viewport.Update(msg)
	return m, cmd
}

func (m appModel) cmdProbe() tea.Cmd {
	ctx := m.ctx
	access := m.services.Access
	return func() tea.Msg {
		state, err := access.Probe(ctx)
		return probeDoneMsg{state: state, err: err}
	}
}

func (m appModel) cmdSetup(req models.SetupRequest) tea.Cmd {
	ctx := m.ctx
	access := m.services.Access
	return func() tea.Msg {
		return accessDoneMsg{err: access.Setup(ctx, req)}
	}
}

func (m appModel) cmdUnlock(req models.UnlockRequest) tea.Cmd {
	ctx := m.ctx
	access := m.services.Access
	return func() tea.Msg {
		return accessDoneMsg{err: access.Unlock(ctx, req)}
	}
}

func (m appModel) cmdLoadPosts() tea.Cmd {
	ctx := m.ctx
	content := m.services.Content
	return func() tea.Msg {
		snapshot, err := content.LoadPosts(ctx)
		return postsLoadedMsg{snapshot: snapshot, err: err}
	}
}

func (m appModel) cmdPublish(draft models.PostDraft, imageFile string) tea.Cmd {
	ctx := m.ctx
	content := m.services.Content
	return func() tea.Msg {
		if imageFile != "" {
			data, err := readImageFile(imageFile)
			if err != nil {
				return postSavedMsg{err: fmt.Errorf("read image: %w", err)}
			}
			path, err := content.UploadImage(ctx, filepath.Base(imageFile), data)
			if err != nil {
				return postSavedMsg{err: err}
			}
			draft.Image = path
		}

		post, err := content.PublishPost(ctx, draft)
		return postSavedMsg{post: post, err: err}
	}
}

func (m appModel) cmdDeletePost(id string) tea.Cmd {
	ctx := m.ctx
	content := m.services.Content
	return func() tea.Msg {
		return postDeletedMsg{id: id, err: content.DeletePost(ctx, id)}
	}
}

func (m appModel) cmdLoadProfile() tea.Cmd {
	ctx := m.ctx
	content := m.services.Content
	return func() tea.Msg {
		snapshot, err := content.LoadProfile(ctx)
		return profileLoadedMsg{snapshot: snapshot, err: err}
	}
}

func (m appModel) cmdSaveProfile(profile models.Profile) tea.Cmd {
	ctx := m.ctx
	content := m.services.Content
	return func() tea.Msg {
		_, err := content.SaveProfile(ctx, profile)
		return profileSavedMsg{err: err}
	}
}

func (m appModel) cmdLoadFeed() tea.Cmd {
	ctx := m.ctx
	load := m.loadFeed
	return func() tea.Msg {
		f, err := load(ctx)
		return feedLoadedMsg{feed: f, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: writeClipboard(text)}
	}
}

func (m appModel) cmdClearStatus() tea.Cmd {
	if m.statusTTL <= 0 {
		return nil
	}
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
