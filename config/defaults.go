// Package config loads and manages toolgate configuration.
// Source priority (highest to lowest):
// 1. Environment variables (TOOLGATE_*)
// 2. ~/.config/toolgate/config.yaml
// 3. Defaults
package config

// Config holds all gateway configuration values.
// NOTE: Values in the config file override defaults, including explicit
// zero values. Missing keys are left at their default values.
type Config struct {
	// StorePath overrides the permission file location. Empty means the
	// per-user default (~/.toolgate/permissions.json).
	StorePath string `yaml:"store_path" envconfig:"STORE_PATH"`

	// RequireInputModel rejects tools that declare no input model, closing
	// the unvalidated-arguments escape hatch.
	RequireInputModel bool `yaml:"require_input_model" envconfig:"REQUIRE_INPUT_MODEL"`

	// LogLevel controls slog verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Policy is the static allow/deny overlay consulted when no durable
	// decision exists for a tool.
	Policy PolicyConfig `yaml:"policy"`
}

// PolicyConfig pre-classifies tools without a prompt. Names listed here
// are not persisted to the permission store; they act as session defaults.
type PolicyConfig struct {
	Allow []string `yaml:"allow" envconfig:"ALLOW"`
	Deny  []string `yaml:"deny" envconfig:"DENY"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StorePath:         "",
		RequireInputModel: false,
		LogLevel:          "info",
	}
}
