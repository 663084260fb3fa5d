package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be in [4, 31] (got %d)", c.Auth.BcryptCost)
	}

	if !strings.HasPrefix(c.AI.BaseURL, "http://") && !strings.HasPrefix(c.AI.BaseURL, "https://") {
		return fmt.Errorf("ai.base_url must be an http(s) URL (got %q)", c.AI.BaseURL)
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries must be >= 0 (got %d)", c.AI.MaxRetries)
	}

	if c.Corpus.DefaultPageSize < 1 {
		return fmt.Errorf("corpus.default_page_size must be >= 1 (got %d)", c.Corpus.DefaultPageSize)
	}
	if c.Corpus.MaxPageSize < c.Corpus.DefaultPageSize {
		return fmt.Errorf("corpus.max_page_size must be >= default_page_size (got %d < %d)",
			c.Corpus.MaxPageSize, c.Corpus.DefaultPageSize)
	}

	if c.Stats.QueueSize < 1 {
		return fmt.Errorf("stats.queue_size must be >= 1 (got %d)", c.Stats.QueueSize)
	}

	return nil
}
