package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for DigestGoat. It is assembled once
// at startup and passed by reference into every crawler constructor.
type Config struct {
	Storage    StorageConfig   `mapstructure:"storage"     yaml:"storage"`
	Fetcher    FetcherConfig   `mapstructure:"fetcher"     yaml:"fetcher"`
	Trending   TrendingConfig  `mapstructure:"trending"    yaml:"trending"`
	News       NewsConfig      `mapstructure:"news"        yaml:"news"`
	Rankings   []RankingSource `mapstructure:"rankings"    yaml:"rankings"`
	CustomSite CustomSite      `mapstructure:"custom_site" yaml:"custom_site"`
	XAI        XAIConfig       `mapstructure:"xai"         yaml:"xai"`
	Summary    SummaryConfig   `mapstructure:"summary"     yaml:"summary"`
	Schedule   ScheduleConfig  `mapstructure:"schedule"    yaml:"schedule"`
	Logging    LoggingConfig   `mapstructure:"logging"     yaml:"logging"`
}

// StorageConfig points at the object-storage bucket every crawler
// uploads into. OutputPath optionally mirrors uploads to local disk.
type StorageConfig struct {
	URL        string `mapstructure:"url"         yaml:"url"`
	Key        string `mapstructure:"key"         yaml:"key"`
	Bucket     string `mapstructure:"bucket"      yaml:"bucket"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

// FetcherConfig controls the shared HTTP client.
type FetcherConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"       yaml:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"    yaml:"user_agent"`
	MaxBodySize int64         `mapstructure:"max_body_size" yaml:"max_body_size"`
}

// TrendingConfig controls the trending-repositories crawler. An empty
// language list omits the crawler from the run.
type TrendingConfig struct {
	BaseURL   string   `mapstructure:"base_url"  yaml:"base_url"`
	Languages []string `mapstructure:"languages" yaml:"languages"`
}

// NewsConfig controls the link-aggregator crawler.
type NewsConfig struct {
	BaseURL       string `mapstructure:"base_url"        yaml:"base_url"`
	MaxStories    int    `mapstructure:"max_stories"     yaml:"max_stories"`
	MinScore      int64  `mapstructure:"min_score"       yaml:"min_score"`
	MinHTMLLength int    `mapstructure:"min_html_length" yaml:"min_html_length"`
	MaxHTMLLength int    `mapstructure:"max_html_length" yaml:"max_html_length"`
}

// SelectorRule defines a single extraction rule for ranking pages.
type SelectorRule struct {
	Selector  string `mapstructure:"selector"  yaml:"selector"`
	Type      string `mapstructure:"type"      yaml:"type"` // css (default), xpath
	Attribute string `mapstructure:"attribute" yaml:"attribute"`
}

// Set reports whether the rule carries a selector at all.
func (r SelectorRule) Set() bool { return r.Selector != "" }

// RankingSource describes one ranking-table page to scrape. The two
// built-in instances cover mcp.so and openrouter.ai; additional sources
// can be added through configuration alone.
type RankingSource struct {
	Slug        string       `mapstructure:"slug"        yaml:"slug"`
	Title       string       `mapstructure:"title"       yaml:"title"`
	URL         string       `mapstructure:"url"         yaml:"url"`
	ScoreLabel  string       `mapstructure:"score_label" yaml:"score_label"`
	Row         SelectorRule `mapstructure:"row"         yaml:"row"`
	Name        SelectorRule `mapstructure:"name"        yaml:"name"`
	Description SelectorRule `mapstructure:"description" yaml:"description"`
	Score       SelectorRule `mapstructure:"score"       yaml:"score"`
}

// CustomSite controls the generic single-URL crawler. An empty URL
// omits the crawler from the run.
type CustomSite struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// XAIConfig controls the AI-search digest crawler. An empty APIKey
// omits the crawler from the run.
type XAIConfig struct {
	APIKey   string `mapstructure:"api_key"  yaml:"api_key"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string `mapstructure:"model"    yaml:"model"`
	Prompt   string `mapstructure:"prompt"   yaml:"prompt"`
}

// SummaryConfig controls story summarization. An empty APIKey omits the
// news crawler from the run.
type SummaryConfig struct {
	APIKey   string `mapstructure:"api_key"   yaml:"api_key"`
	MaxChars int    `mapstructure:"max_chars" yaml:"max_chars"`
}

// ScheduleConfig is the daily trigger time in UTC.
type ScheduleConfig struct {
	Hour   int `mapstructure:"hour"   yaml:"hour"`
	Minute int `mapstructure:"minute" yaml:"minute"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults, including the
// two built-in ranking sources.
func DefaultConfig() *Config {
	return &Config{
		Fetcher: FetcherConfig{
			Timeout:     30 * time.Second,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize: 10 * 1024 * 1024, // 10MB
		},
		Trending: TrendingConfig{
			BaseURL: "https://github.com",
		},
		News: NewsConfig{
			BaseURL:       "https://hacker-news.firebaseio.com/v0",
			MaxStories:    30,
			MinScore:      20,
			MinHTMLLength: 200,
			MaxHTMLLength: 20000,
		},
		Rankings: DefaultRankingSources(),
		XAI: XAIConfig{
			Endpoint: "https://api.x.ai/v1/chat/completions",
			Model:    "grok-3-latest",
			Prompt:   "Provide me a digest of world news in the last 24 hours.",
		},
		Summary: SummaryConfig{
			MaxChars: 200,
		},
		Schedule: ScheduleConfig{
			Hour:   9,
			Minute: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultRankingSources returns the built-in ranking-table sources. The
// selectors are deliberately broad: these pages carry no stable markup
// contract, so each rule lists several plausible matches.
func DefaultRankingSources() []RankingSource {
	return []RankingSource{
		{
			Slug:       "mcp-rankings",
			Title:      "MCP Server Rankings",
			URL:        "https://mcp.so",
			ScoreLabel: "Stars",
			Row:        SelectorRule{Selector: "tr, .server-row, .mcp-row, .ranking-item"},
			Name:       SelectorRule{Selector: ".server-name, .name, h3, h4, .title"},
			Description: SelectorRule{
				Selector: ".description, .desc, p",
			},
			Score: SelectorRule{Selector: ".stars, .star-count, .github-stars"},
		},
		{
			Slug:       "openrouter-rankings",
			Title:      "OpenRouter Model Rankings",
			URL:        "https://openrouter.ai/rankings",
			ScoreLabel: "Score",
			Row:        SelectorRule{Selector: "tr, .ranking-row, .model-row"},
			Name:       SelectorRule{Selector: ".model-name, .name, h3, h4"},
			Score:      SelectorRule{Selector: ".score, .rating, .points"},
		},
	}
}
