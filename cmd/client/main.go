package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kianlavi/onlyfan/internal/client"
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/tui"
	"github.com/kianlavi/onlyfan/internal/workers"
	"github.com/kianlavi/onlyfan/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("onlyfan-admin")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	services, reader, err := client.NewServices(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	w := workers.NewWorkers(services.Refresh, cfg.Workers, log)

	ui, err := tui.New(services, w, tui.Config{
		Subject:    cfg.App.Repository,
		Build:      build,
		FeedReader: reader,
		FeedPaths:  feed.Paths{Posts: cfg.App.PostsPath, Profile: cfg.App.ProfilePath},
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, w, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
