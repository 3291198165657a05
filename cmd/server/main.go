package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/handler"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/metrics"
	"github.com/kianlavi/onlyfan/internal/server"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/store"
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

	log := logger.NewLogger("onlyfan-store")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("driver", cfg.Storage.DB.Driver).
		Str("files_root", cfg.Storage.Files.RootDir).
		Strs("repositories", cfg.Server.Repositories).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg.App, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.RepositoryService.EnsureRepositories(ctx, cfg.Server.Repositories, cfg.Server.PublicRepositories); err != nil {
		log.Fatal().Err(err).Msg("error ensuring repositories")
	}

	db, dbName := storages.SQLDB()
	storeMetrics := metrics.New(build, db, dbName)

	handlers, err := handler.NewHandlers(services, storeMetrics, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
