package sources

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/types"
)

const (
	trendingSlug = "github-trending"

	repoTemplate = "\n# {title}\n\n**Stars**: {stars}\n\n[View Repository]({link})\n\n{description}\n"
)

// Repository is one trending-page entry.
type Repository struct {
	Name        string
	Link        string
	Stars       string
	Description string
}

// TrendingCrawler scrapes the daily trending page for each configured
// language concurrently and uploads a single combined document.
type TrendingCrawler struct {
	client    *fetcher.Client
	sink      sink.Sink
	baseURL   string
	languages []string
	logger    *slog.Logger
}

// NewTrending creates the trending-repositories crawler.
func NewTrending(cfg *config.TrendingConfig, client *fetcher.Client, snk sink.Sink, logger *slog.Logger) *TrendingCrawler {
	return &TrendingCrawler{
		client:    client,
		sink:      snk,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		languages: cfg.Languages,
		logger:    logger.With("component", "trending_crawler"),
	}
}

func (c *TrendingCrawler) Name() string { return "GitHub Trending" }

// Run fetches every language concurrently. A failed language is logged
// and skipped; the task only fails if the final upload does. Sections
// are concatenated in completion order.
func (c *TrendingCrawler) Run(ctx context.Context) error {
	var (
		mu       sync.Mutex
		sections []string
		wg       sync.WaitGroup
	)

	for _, language := range c.languages {
		wg.Add(1)
		go func(language string) {
			defer wg.Done()
			repos, err := c.fetchLanguage(ctx, language)
			if err != nil {
				c.logger.Warn("language fetch failed", "language", language, "error", err)
				return
			}
			if len(repos) == 0 {
				return
			}
			parts := make([]string, len(repos))
			for i, repo := range repos {
				parts[i] = renderRepository(repo)
			}
			mu.Lock()
			sections = append(sections, parts...)
			mu.Unlock()
		}(language)
	}
	wg.Wait()

	if len(sections) == 0 {
		c.logger.Info("no trending repositories found")
		return nil
	}

	path := datePath(trendingSlug)
	content := strings.Join(sections, "\n---\n")
	if err := c.sink.Upload(ctx, path, []byte(content), markdownContentType); err != nil {
		return err
	}

	c.logger.Info("trending repositories uploaded", "path", path, "repositories", len(sections))
	return nil
}

// fetchLanguage scrapes one language's trending page. An empty language
// fetches the overall trending page.
func (c *TrendingCrawler) fetchLanguage(ctx context.Context, language string) ([]Repository, error) {
	url := c.baseURL + "/trending?since=daily"
	if language != "" {
		url = c.baseURL + "/trending/" + language + "?since=daily"
	}

	body, err := c.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, &types.ParseError{Source: trendingSlug, Err: err}
	}

	var repos []Repository
	doc.Find("article.Box-row").Each(func(_ int, article *goquery.Selection) {
		href, ok := article.Find("h2.h3 a").First().Attr("href")
		name := strings.TrimPrefix(strings.TrimSpace(href), "/")
		if !ok || name == "" {
			c.logger.Warn("skipping trending entry without a repository name")
			return
		}

		description := strings.TrimSpace(article.Find("p.col-9").First().Text())

		stars := strings.TrimSpace(article.Find("a[href*='/stargazers']").First().Text())
		stars = strings.ReplaceAll(stars, ",", "")
		if stars == "" {
			stars = "0"
		}

		repos = append(repos, Repository{
			Name:        name,
			Link:        "https://github.com/" + name,
			Stars:       stars,
			Description: description,
		})
	})

	c.logger.Debug("trending page parsed", "language", language, "repositories", len(repos))
	return repos, nil
}

// renderRepository fills the Markdown section template for one entry.
func renderRepository(repo Repository) string {
	description := repo.Description
	if description == "" {
		description = "No description provided."
	}
	r := strings.NewReplacer(
		"{title}", repo.Name,
		"{stars}", repo.Stars,
		"{link}", repo.Link,
		"{description}", description,
	)
	return r.Replace(repoTemplate)
}
