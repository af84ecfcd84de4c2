package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig
	Rules  RulesConfig
	Budget BudgetConfig
}

// RedisConfig holds Redis-specific configuration. Without a URL drafts are
// kept in memory.
type RedisConfig struct {
	URL      string        `env:"REDIS_URL"`
	DraftTTL time.Duration `env:"CHARGEN_DRAFT_TTL" envDefault:"168h"`
}

// RulesConfig selects the rules file; empty means the built-in rules
type RulesConfig struct {
	CatalogPath string `env:"CHARGEN_CATALOG"`
}

// BudgetConfig holds the starting generation points and the pool maxima
type BudgetConfig struct {
	GP int `env:"CHARGEN_GP" envDefault:"110"`

	// DisadvantageLimit and BadTraitLimit cap the points disadvantages may
	// bring in; going over is reported, not prevented
	DisadvantageLimit int `env:"CHARGEN_DISADVANTAGE_GP" envDefault:"50"`
	BadTraitLimit     int `env:"CHARGEN_BAD_TRAIT_GP"    envDefault:"30"`

	AdvantagePool    int `env:"CHARGEN_ADVANTAGE_POOL"`
	DisadvantagePool int `env:"CHARGEN_DISADVANTAGE_POOL"`
	AbilityPool      int `env:"CHARGEN_ABILITY_POOL"`
	CheaperPool      int `env:"CHARGEN_CHEAPER_POOL"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Budget.GP < 0 {
		return nil, fmt.Errorf("CHARGEN_GP must not be negative")
	}
	pools := []int{cfg.Budget.AdvantagePool, cfg.Budget.DisadvantagePool, cfg.Budget.AbilityPool, cfg.Budget.CheaperPool}
	for _, p := range pools {
		if p < 0 {
			return nil, fmt.Errorf("pool maxima must not be negative")
		}
	}

	return &cfg, nil
}
