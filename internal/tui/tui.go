package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/workers"
	"github.com/kianlavi/onlyfan/models"
)

var errNoServices = errors.New("client services are required")

// Config holds what the admin panel shows besides the services.
type Config struct {
	// Subject prefills the repository field of the setup screen.
	Subject string
	Build   models.AppBuildInfo

	// FeedReader and FeedPaths locate the published documents for the feed
	// preview. The preview is read without the session.
	FeedReader adapter.DocumentReader
	FeedPaths  feed.Paths
}

type TUI struct {
	services *service.ClientServices
	workers  *workers.Workers
	cfg      Config
	logger   *logger.Logger
}

func New(services *service.ClientServices, w *workers.Workers, cfg Config, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errNoServices
	}
	return &TUI{services: services, workers: w, cfg: cfg, logger: logger}, nil
}

// Run shows the admin panel until the user quits. The session and the
// background workers end with it.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.workers, t.cfg)

	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	if t.workers != nil {
		t.workers.Stop()
	}
	t.services.Logout(context.WithoutCancel(ctx))

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", runErr)
	}

	result, ok := finalModel.(appModel)
	if ok && result.quit {
		t.logger.Info().Str("func", "TUI.Run").Msg("user quit")
	}
	return nil
}
