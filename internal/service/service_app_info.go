package service

import (
	"context"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/models"
)

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns the version reported by /api/version. The
// configured version wins over the linked build version.
func NewAppInfoService(version string, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if version == "" {
		version = build.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: version,
		build:      build,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
