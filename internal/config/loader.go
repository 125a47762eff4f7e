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
//  2. file (YAML) if RECOGNITION_CONFIG is set
//  3. env (prefix RECOGNITION_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RECOGNITION_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RECOGNITION_ADDR, RECOGNITION_TOP_KEYWORDS, ...
	// Map env keys like RECOGNITION_TOP_KEYWORDS -> top_keywords (flat keys).
	envProvider := env.Provider("RECOGNITION_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "recognition_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.FlushIntervalSeconds <= 0:
		return nil, fmt.Errorf("%w: flush_interval_seconds must be positive", ErrInvalidConfig)
	case cfg.TopKeywords <= 0:
		return nil, fmt.Errorf("%w: top_keywords must be positive", ErrInvalidConfig)
	case cfg.MinKeywordLength <= 0:
		return nil, fmt.Errorf("%w: min_keyword_length must be positive", ErrInvalidConfig)
	case cfg.SubscriberBuffer <= 0:
		return nil, fmt.Errorf("%w: subscriber_buffer must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
