package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Validation normalizes as it goes: the base URL loses its trailing
// slash so path concatenation stays predictable.
func (c *Config) Validate() error {
	if err := c.Site.validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	if err := c.OG.validate(); err != nil {
		return fmt.Errorf("og: %w", err)
	}
	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	return nil
}

func (s *SiteConfig) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}

	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https (got %q)", s.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host (got %q)", s.BaseURL)
	}
	return nil
}

func (f *FeedConfig) validate() error {
	if f.ItemLimit < 1 || f.ItemLimit > 500 {
		return fmt.Errorf("item_limit must be between 1 and 500 (got %d)", f.ItemLimit)
	}
	return nil
}

func (o *OGConfig) validate() error {
	if o.StaticCacheTTL < 0 {
		return fmt.Errorf("static_cache_ttl must be >= 0 (got %v)", o.StaticCacheTTL)
	}
	if o.PostCacheTTL < 0 {
		return fmt.Errorf("post_cache_ttl must be >= 0 (got %v)", o.PostCacheTTL)
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RPS <= 0 {
		return fmt.Errorf("rps must be > 0 when enabled (got %v)", r.RPS)
	}
	if r.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 when enabled (got %d)", r.Burst)
	}
	return nil
}
