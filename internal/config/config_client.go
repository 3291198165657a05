package config

import (
	"fmt"
	"time"
)

// ClientApp holds the content layout and vault settings used by the client.
type ClientApp struct {
	// Repository is the "owner/name" holding the vault and content.
	Repository string
	// SiteURL is the published site root, empty when the vault is read
	// through the contents API.
	SiteURL string

	VaultPath   string
	PostsPath   string
	ProfilePath string
	ImagesDir   string

	// VaultKDF selects the key derivation for newly sealed envelopes.
	VaultKDF string
	// MinPasswordLength is the minimum vault password length.
	MinPasswordLength int
}

// ClientAdapter holds settings of the outbound contents API client.
type ClientAdapter struct {
	// HTTPAddress is the contents API base URL.
	HTTPAddress string
	// RequestTimeout is the bounded wait applied to each store call.
	RequestTimeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the content refresh job runs.
	RefreshInterval time.Duration
}

// ClientConfig is the client configuration view assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Workers ClientWorkers
	Log     Log
}

// GetClientConfig builds and validates the client config view from
// defaults, environment, args and the JSON file.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return cfg.ClientView()
}

// ClientView maps the fields relevant to the client runtime and validates
// the result.
func (cfg *StructuredConfig) ClientView() (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Repository:        cfg.App.Repository,
			SiteURL:           cfg.App.SiteURL,
			VaultPath:         cfg.App.VaultPath,
			PostsPath:         cfg.App.PostsPath,
			ProfilePath:       cfg.App.ProfilePath,
			ImagesDir:         cfg.App.ImagesDir,
			VaultKDF:          cfg.App.VaultKDF,
			MinPasswordLength: cfg.App.MinPasswordLength,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			UserAgent:      cfg.Adapter.UserAgent,
		},
		Workers: ClientWorkers{RefreshInterval: cfg.Workers.RefreshInterval},
		Log:     cfg.Log,
	}

	return clientCfg, clientCfg.validate()
}
