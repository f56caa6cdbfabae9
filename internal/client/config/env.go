package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with YTS_* environment variables. Unset variables
// leave the current values untouched; malformed values panic.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
