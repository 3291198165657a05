package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/workers"
)

var errNoUI = errors.New("client ui is required")

type App struct {
	ui      UI
	workers *workers.Workers
	logger  *logger.Logger
}

func NewApp(ui UI, w *workers.Workers, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errNoUI
	}
	return &App{ui: ui, workers: w, logger: logger}, nil
}

// Run blocks until the UI exits. SIGINT and SIGTERM cancel the context the
// UI runs with.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if a.workers != nil && a.workers.Running() {
			a.workers.Stop()
		}
	}()

	a.logger.Info().Str("func", "App.Run").Msg("admin panel started")

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("client ui: %w", err)
	}

	a.logger.Info().Str("func", "App.Run").Msg("admin panel stopped")
	return nil
}
