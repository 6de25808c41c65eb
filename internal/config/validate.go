package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minLiveTTL     = time.Second
	maxLiveTTL     = 10 * time.Minute
	minBaselineTTL = time.Hour
	minDedupe      = time.Minute
)

// Validate checks configuration bounds, returning all failures at once.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Token) < minTokenLength {
		errs = append(errs, fmt.Errorf("discord token looks too short (%d chars, need at least %d)", len(c.Token), minTokenLength))
	}

	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		errs = append(errs, fmt.Errorf("FC_API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL))
	}

	if c.ScoreThreshold <= 0 {
		errs = append(errs, fmt.Errorf("SCORE_NOISE_FLOOR must be positive, got %v", c.ScoreThreshold))
	}

	if c.LiveCacheTTL < minLiveTTL || c.LiveCacheTTL > maxLiveTTL {
		errs = append(errs, fmt.Errorf("LIVE_CACHE_TTL must be between %v and %v, got %v", minLiveTTL, maxLiveTTL, c.LiveCacheTTL))
	}

	if c.BaselineCacheTTL < minBaselineTTL {
		errs = append(errs, fmt.Errorf("BASELINE_CACHE_TTL must be at least %v, got %v", minBaselineTTL, c.BaselineCacheTTL))
	}

	if c.BaselineCacheTTL <= c.LiveCacheTTL {
		errs = append(errs, fmt.Errorf("BASELINE_CACHE_TTL (%v) must exceed LIVE_CACHE_TTL (%v)", c.BaselineCacheTTL, c.LiveCacheTTL))
	}

	if c.DedupeWindow < minDedupe {
		errs = append(errs, fmt.Errorf("DEDUPE_WINDOW must be at least %v, got %v", minDedupe, c.DedupeWindow))
	}

	return errors.Join(errs...)
}
