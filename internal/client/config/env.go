package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with WARDROBE_* environment variables. Unset
// variables leave the current value alone. Panics on malformed values, like
// the JSON and flag loaders.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
