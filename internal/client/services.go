package client

import (
	"fmt"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/service"
)

// NewServices builds the client services for cfg and the reader the vault
// and the feed are read through: the published site when a site URL is
// configured, otherwise the contents API itself.
func NewServices(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, adapter.DocumentReader, error) {
	store, err := adapter.NewContentsAPIAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create contents api adapter: %w", err)
	}

	reader, err := newReader(cfg, store, log)
	if err != nil {
		return nil, nil, err
	}

	services, err := service.NewClientServices(store, reader, cfg.App, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create client services: %w", err)
	}
	return services, reader, nil
}

func newReader(cfg *config.ClientConfig, store adapter.ContentStore, log *logger.Logger) (adapter.DocumentReader, error) {
	if cfg.App.SiteURL == "" {
		return adapter.NewRepositoryReader(store, cfg.App.Repository), nil
	}

	reader, err := adapter.NewSiteReader(cfg.App.SiteURL, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("create site reader: %w", err)
	}
	return reader, nil
}
