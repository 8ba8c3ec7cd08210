package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by FromEnv.
const EnvPrefix = "THINGSD_"

// FromEnv overlays PREFIX_* environment variables onto base, e.g.
// THINGSD_MAX_BODY_BYTES=2048. List values are comma separated.
func FromEnv(prefix string, base Config) (Config, error) {
	k := koanf.New(".")
	provider := env.ProviderWithValue(prefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, prefix))
		if key == "cors_origins" {
			return key, SplitCSV(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return base, fmt.Errorf("load env: %w", err)
	}
	cfg := base
	if err := k.Unmarshal("", &cfg); err != nil {
		return base, fmt.Errorf("decode env: %w", err)
	}
	return cfg, nil
}

// SplitCSV splits a comma separated list, trimming blanks and dropping
// empty entries.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
