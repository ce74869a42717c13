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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if COLLABGRAPH_CONFIG is set
//  3. env (prefix COLLABGRAPH_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	// Agent names carry dots ("Claude Sonnet 4.5"), so table keys would
	// split on the conventional "." delimiter.
	k := koanf.New("::")

	// Load from file if provided
	if path := os.Getenv("COLLABGRAPH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: COLLABGRAPH_LOG_LEVEL, COLLABGRAPH_SHARD_COUNT, ...
	// Map env keys like COLLABGRAPH_SHARD_COUNT -> shard_count (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("COLLABGRAPH_", "::", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "collabgraph_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.EventsPath == "" {
		return nil, fmt.Errorf("%w: events_path must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	if cfg.ShardCount < 1 {
		return nil, fmt.Errorf("%w: shard_count must be at least 1, got %d", ErrInvalidConfig, cfg.ShardCount)
	}
	return &cfg, nil
}
