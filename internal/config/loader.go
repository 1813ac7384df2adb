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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ULTRA_CONFIG is set
//  3. env (prefix ULTRA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ULTRA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, WrapLoad(err)
		}
	}

	// Env keys like ULTRA_CLUSTER_MILE_THRESHOLD map to cluster_mile_threshold;
	// underscores are preserved to match the koanf tags on Config.
	envProvider := env.Provider("ULTRA_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "ultra_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, WrapLoad(err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, WrapLoad(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ClusterMileThreshold <= 0:
		return fmt.Errorf("%w: cluster_mile_threshold must be positive", ErrInvalidConfig)
	case c.CriticalSegmentLimit <= 0:
		return fmt.Errorf("%w: critical_segment_limit must be positive", ErrInvalidConfig)
	case c.MaxSelectedRunners <= 0:
		return fmt.Errorf("%w: max_selected_runners must be positive", ErrInvalidConfig)
	case c.AnalyticsConcurrency <= 0:
		return fmt.Errorf("%w: analytics_concurrency must be positive", ErrInvalidConfig)
	}
	return nil
}
