package config

import "fmt"

// GetCLIConfig builds the configuration for the command-line tool. Command
// flags are parsed by cobra and passed in as overrides, which take the place
// of [ParseFlags] in the merge order.
//
// The result is not validated as a whole: each command validates the view
// it needs ([StructuredConfig.ClientView] or [StructuredConfig.ServerView]).
func GetCLIConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get cli config: %w", err)
	}
	return cfg, nil
}
