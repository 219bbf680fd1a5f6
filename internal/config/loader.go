package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("DIGESTGOAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("digestgoat")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".digestgoat"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Trending.Languages = splitList(v.GetString("trending.languages"), cfg.Trending.Languages)

	return cfg, nil
}

// splitList parses a comma-separated env value into a list, keeping the
// existing list when the value is empty.
func splitList(raw string, existing []string) []string {
	if raw == "" {
		return existing
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return existing
	}
	return out
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.url", cfg.Storage.URL)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.bucket", cfg.Storage.Bucket)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)

	v.SetDefault("fetcher.timeout", cfg.Fetcher.Timeout)
	v.SetDefault("fetcher.user_agent", cfg.Fetcher.UserAgent)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)

	v.SetDefault("trending.base_url", cfg.Trending.BaseURL)

	v.SetDefault("news.base_url", cfg.News.BaseURL)
	v.SetDefault("news.max_stories", cfg.News.MaxStories)
	v.SetDefault("news.min_score", cfg.News.MinScore)
	v.SetDefault("news.min_html_length", cfg.News.MinHTMLLength)
	v.SetDefault("news.max_html_length", cfg.News.MaxHTMLLength)

	v.SetDefault("custom_site.url", cfg.CustomSite.URL)

	v.SetDefault("xai.api_key", cfg.XAI.APIKey)
	v.SetDefault("xai.endpoint", cfg.XAI.Endpoint)
	v.SetDefault("xai.model", cfg.XAI.Model)
	v.SetDefault("xai.prompt", cfg.XAI.Prompt)

	v.SetDefault("summary.api_key", cfg.Summary.APIKey)
	v.SetDefault("summary.max_chars", cfg.Summary.MaxChars)

	v.SetDefault("schedule.hour", cfg.Schedule.Hour)
	v.SetDefault("schedule.minute", cfg.Schedule.Minute)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
