// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package config

import (
	"fmt"
	"slices"

	"github.com/kianlavi/onlyfan/internal/crypto"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.Repository == "" && cfg.App.SiteURL == "" {
		return fmt.Errorf("%w: repository or site url is required", ErrInvalidAppConfigs)
	}
	if cfg.App.VaultPath == "" || cfg.App.PostsPath == "" || cfg.App.ProfilePath == "" || cfg.App.ImagesDir == "" {
		return fmt.Errorf("%w: document paths must not be empty", ErrInvalidAppConfigs)
	}
	if cfg.App.MinPasswordLength < 1 {
		return fmt.Errorf("%w: minimum password length must be positive", ErrInvalidAppConfigs)
	}
	if _, err := crypto.VersionForKDF(cfg.App.VaultKDF); err != nil {
		return fmt.Errorf("%w: vault kdf %q", ErrInvalidAppConfigs, cfg.App.VaultKDF)
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.Files.RootDir == "" {
		if !slices.Contains([]string{"sqlite3", "pgx"}, cfg.Storage.DB.Driver) {
			return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
		}
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs)
	}

	return nil
}
