package config

import (
	"fmt"
	"slices"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("log_level must be one of %v, got %q", validLogLevels, c.LogLevel))
	}

	for _, name := range c.Policy.Allow {
		if name == "" {
			errs = append(errs, "policy.allow must not contain empty tool names")
			break
		}
	}
	for _, name := range c.Policy.Deny {
		if name == "" {
			errs = append(errs, "policy.deny must not contain empty tool names")
			break
		}
		if slices.Contains(c.Policy.Allow, name) {
			errs = append(errs, fmt.Sprintf("tool %q appears in both policy.allow and policy.deny", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
