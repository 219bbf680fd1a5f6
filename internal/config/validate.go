package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and coherent.
// Optional values (languages, API keys, custom-site URL) are not
// required here: their absence omits a crawler, it is never an error.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Storage.URL) == "" {
		return fmt.Errorf("storage.url must be set")
	}
	if _, err := url.ParseRequestURI(cfg.Storage.URL); err != nil {
		return fmt.Errorf("storage.url is not a valid URL: %w", err)
	}
	if cfg.Storage.Key == "" {
		return fmt.Errorf("storage.key must be set")
	}
	if cfg.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket must be set")
	}

	if cfg.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive")
	}

	if cfg.News.MinHTMLLength >= cfg.News.MaxHTMLLength {
		return fmt.Errorf("news.min_html_length (%d) must be below news.max_html_length (%d)",
			cfg.News.MinHTMLLength, cfg.News.MaxHTMLLength)
	}
	if cfg.News.MaxStories <= 0 {
		return fmt.Errorf("news.max_stories must be positive")
	}

	for i, src := range cfg.Rankings {
		if src.Slug == "" {
			return fmt.Errorf("rankings[%d].slug must be set", i)
		}
		if src.URL == "" {
			return fmt.Errorf("rankings[%d] (%s): url must be set", i, src.Slug)
		}
		if !src.Row.Set() || !src.Name.Set() {
			return fmt.Errorf("rankings[%d] (%s): row and name selectors must be set", i, src.Slug)
		}
	}

	if cfg.Schedule.Hour < 0 || cfg.Schedule.Hour > 23 {
		return fmt.Errorf("schedule.hour must be within 0-23")
	}
	if cfg.Schedule.Minute < 0 || cfg.Schedule.Minute > 59 {
		return fmt.Errorf("schedule.minute must be within 0-59")
	}

	return nil
}
