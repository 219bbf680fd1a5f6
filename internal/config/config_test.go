package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Storage.URL = "https://example.supabase.co/storage/v1"
	cfg.Storage.Key = "service-key"
	cfg.Storage.Bucket = "digests"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Fetcher.Timeout != 30*time.Second {
		t.Errorf("fetcher timeout = %s", cfg.Fetcher.Timeout)
	}
	if cfg.News.MaxStories != 30 || cfg.News.MinScore != 20 {
		t.Errorf("news defaults = %+v", cfg.News)
	}
	if cfg.Summary.MaxChars != 200 {
		t.Errorf("summary max chars = %d", cfg.Summary.MaxChars)
	}
	if cfg.Schedule.Hour != 9 || cfg.Schedule.Minute != 0 {
		t.Errorf("schedule defaults = %+v", cfg.Schedule)
	}

	if len(cfg.Rankings) != 2 {
		t.Fatalf("expected 2 built-in ranking sources, got %d", len(cfg.Rankings))
	}
	slugs := []string{cfg.Rankings[0].Slug, cfg.Rankings[1].Slug}
	if slugs[0] != "mcp-rankings" || slugs[1] != "openrouter-rankings" {
		t.Errorf("ranking slugs = %v", slugs)
	}
	for _, src := range cfg.Rankings {
		if !src.Row.Set() || !src.Name.Set() {
			t.Errorf("ranking %s missing required selectors", src.Slug)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing url", func(c *Config) { c.Storage.URL = "" }, "storage.url"},
		{"bad url", func(c *Config) { c.Storage.URL = "not a url" }, "storage.url"},
		{"missing key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }, "storage.bucket"},
		{"zero timeout", func(c *Config) { c.Fetcher.Timeout = 0 }, "fetcher.timeout"},
		{"inverted html window", func(c *Config) { c.News.MinHTMLLength = 30000 }, "min_html_length"},
		{"zero max stories", func(c *Config) { c.News.MaxStories = 0 }, "max_stories"},
		{"ranking without slug", func(c *Config) { c.Rankings[0].Slug = "" }, "slug"},
		{"ranking without url", func(c *Config) { c.Rankings[0].URL = "" }, "url"},
		{"ranking without row", func(c *Config) { c.Rankings[0].Row = SelectorRule{} }, "row"},
		{"hour out of range", func(c *Config) { c.Schedule.Hour = 24 }, "schedule.hour"},
		{"minute out of range", func(c *Config) { c.Schedule.Minute = 60 }, "schedule.minute"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateOptionalAbsenceOK(t *testing.T) {
	cfg := validConfig()
	cfg.Trending.Languages = nil
	cfg.Summary.APIKey = ""
	cfg.XAI.APIKey = ""
	cfg.CustomSite.URL = ""
	cfg.Rankings = nil
	if err := Validate(cfg); err != nil {
		t.Errorf("optional absences must validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digestgoat.yaml")
	data := `
storage:
  url: https://example.supabase.co/storage/v1
  key: file-key
  bucket: file-bucket
trending:
  languages:
    - go
    - rust
news:
  min_score: 50
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Storage.Key != "file-key" || cfg.Storage.Bucket != "file-bucket" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if len(cfg.Trending.Languages) != 2 || cfg.Trending.Languages[0] != "go" {
		t.Errorf("languages = %v", cfg.Trending.Languages)
	}
	if cfg.News.MinScore != 50 {
		t.Errorf("min score = %d", cfg.News.MinScore)
	}

	// Untouched values keep their defaults.
	if cfg.News.MaxStories != 30 {
		t.Errorf("max stories = %d", cfg.News.MaxStories)
	}
	if len(cfg.Rankings) != 2 {
		t.Errorf("rankings = %d", len(cfg.Rankings))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DIGESTGOAT_STORAGE_KEY", "env-key")
	t.Setenv("DIGESTGOAT_TRENDING_LANGUAGES", "go, python,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Storage.Key != "env-key" {
		t.Errorf("storage key = %q", cfg.Storage.Key)
	}
	if len(cfg.Trending.Languages) != 2 || cfg.Trending.Languages[1] != "python" {
		t.Errorf("languages = %v", cfg.Trending.Languages)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestSplitList(t *testing.T) {
	existing := []string{"keep"}
	if got := splitList("", existing); len(got) != 1 || got[0] != "keep" {
		t.Errorf("empty input: %v", got)
	}
	if got := splitList("a, b ,c", nil); len(got) != 3 || got[1] != "b" {
		t.Errorf("split: %v", got)
	}
	if got := splitList(" , ,", existing); len(got) != 1 || got[0] != "keep" {
		t.Errorf("blank parts: %v", got)
	}
}
