package config

import (
	"fmt"
	"time"
)

// ServerApp holds the token settings of the self-hosted store.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

// ServerConfig is the self-hosted store configuration view assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage Storage
	Log     Log
}

// GetServerConfig builds and validates the server config view from
// defaults, environment, args and the JSON file.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return cfg.ServerView()
}

// ServerView maps the fields relevant to the self-hosted store and
// validates the result.
func (cfg *StructuredConfig) ServerView() (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			Version:       cfg.App.Version,
		},
		Server:  cfg.Server,
		Storage: cfg.Storage,
		Log:     cfg.Log,
	}

	return serverCfg, serverCfg.validate()
}
