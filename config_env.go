package legendsauth

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every configuration variable, e.g.
// LEGENDS_AUTH_EXCHANGE_BASE_URL.
const envPrefix = "LEGENDS_AUTH_"

// ConfigFromEnv builds a [Config] from process environment variables,
// falling back to the same defaults as [DefaultConfig] for unset variables.
//
// ConfigFromEnv may return an error when input validation, dependency calls, or security checks fail.
// ConfigFromEnv does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
