package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SKILLSWAP_ADDR.
	EnvPrefix = "SKILLSWAP_"
	// EnvConfigFile names an optional YAML file loaded before the environment.
	EnvConfigFile = "SKILLSWAP_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SKILLSWAP_CONFIG is set
//  3. env (prefix SKILLSWAP_)
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	// Flat keys: SKILLSWAP_QUEUE_SIZE -> queue_size. The file variable itself is
	// not a config key.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}
