package config

import "time"

// Well-known document locations shared with the published site.
const (
	DefaultVaultPath   = "admin-config.enc.json"
	DefaultPostsPath   = "posts.json"
	DefaultProfilePath = "profile.json"
	DefaultImagesDir   = "images"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			VaultPath:         DefaultVaultPath,
			PostsPath:         DefaultPostsPath,
			ProfilePath:       DefaultProfilePath,
			ImagesDir:         DefaultImagesDir,
			VaultKDF:          "pbkdf2",
			MinPasswordLength: 4,
			TokenIssuer:       "onlyfan",
			TokenDuration:     30 * 24 * time.Hour,
		},
		Storage: Storage{
			DB: DB{Driver: "sqlite3"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "https://api.github.com",
			RequestTimeout: 15 * time.Second,
			UserAgent:      "onlyfan",
		},
		Workers: Workers{
			RefreshInterval: time.Minute,
		},
		Log: Log{Level: "info"},
	}
}
