package service

import (
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/store"
	"github.com/kianlavi/onlyfan/models"
)

// Services bundles the services of the self-hosted store.
type Services struct {
	DocumentService   DocumentService
	RepositoryService RepositoryService
	TokenService      TokenService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.ServerApp, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.Version, build, logger)
	if err != nil {
		return nil, err
	}

	documents := NewDocumentValidationService().Wrap(NewDocumentService(storages.Documents, logger))

	return &Services{
		DocumentService:   documents,
		RepositoryService: NewRepositoryService(storages.Repositories, logger),
		TokenService:      NewTokenService(cfg, logger),
		AppInfoService:    appInfo,
	}, nil
}
