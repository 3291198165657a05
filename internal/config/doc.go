// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags (or CLI overrides)
//  3. JSON config file
//
// The entry points are [GetClientConfig] for the TUI client,
// [GetServerConfig] for the self-hosted store and [GetCLIConfig] for the
// command-line tool.
package config
