// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging defaults, environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix is the prefix applied to all nested env tag lookups (caarlos0/env).
//   - env is the direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the content layout, vault and token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the self-hosted store backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the self-hosted store listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the outbound contents API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// Repository is the "owner/name" the vault and content documents live in.
	// Env: APP_REPOSITORY
	Repository string `env:"REPOSITORY"`

	// SiteURL is the published site root. When set, the vault and the feed
	// are read from it with plain GETs instead of the contents API.
	// Env: APP_SITE_URL
	SiteURL string `env:"SITE_URL"`

	// VaultPath is the well-known path of the encrypted credential document.
	// Env: APP_VAULT_PATH
	VaultPath string `env:"VAULT_PATH"`

	// PostsPath is the path of the posts collection.
	// Env: APP_POSTS_PATH
	PostsPath string `env:"POSTS_PATH"`

	// ProfilePath is the path of the profile record.
	// Env: APP_PROFILE_PATH
	ProfilePath string `env:"PROFILE_PATH"`

	// ImagesDir is the directory uploaded images are committed to.
	// Env: APP_IMAGES_DIR
	ImagesDir string `env:"IMAGES_DIR"`

	// VaultKDF selects the key derivation for newly sealed envelopes:
	// "pbkdf2" (envelope v1) or "argon2id" (envelope v2).
	// Env: APP_VAULT_KDF
	VaultKDF string `env:"VAULT_KDF"`

	// MinPasswordLength is the minimum vault password length accepted by Setup.
	// Env: APP_MIN_PASSWORD_LENGTH
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH"`

	// TokenSignKey is the secret key used to sign and verify bearer tokens
	// of the self-hosted store. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a minted token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the version string exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the self-hosted store backends. Files.RootDir, when set,
// takes precedence over the database.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational backend.
type DB struct {
	// Driver is "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name, a file path for sqlite3 or a postgres URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds settings for the filesystem backend.
type Files struct {
	// RootDir is the directory repositories are stored under.
	// Env: STORAGE_FILES_ROOT_DIR
	RootDir string `env:"ROOT_DIR"`
}

// Server holds network and timeout settings for the self-hosted store.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Repositories are created at startup when missing.
	// Env: SERVER_REPOSITORIES (comma separated)
	Repositories []string `env:"REPOSITORIES" envSeparator:","`

	// PublicRepositories allow anonymous reads.
	// Env: SERVER_PUBLIC_REPOSITORIES (comma separated)
	PublicRepositories []string `env:"PUBLIC_REPOSITORIES" envSeparator:","`
}

// Adapter holds settings of the outbound contents API client.
type Adapter struct {
	// HTTPAddress is the contents API base URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the bounded wait applied to every store call;
	// expiry is reported as a transport error.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UserAgent is sent with every request.
	// Env: ADAPTER_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// RefreshInterval is how often the content refresh job re-reads posts
	// and profile while a session is active.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads and merges the configuration from defaults,
// environment variables, the given command-line arguments and the JSON file
// named by either of them.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
