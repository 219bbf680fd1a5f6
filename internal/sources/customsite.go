package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/extract"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/summarize"
)

const customSiteSlug = "custom-site"

// CustomSiteCrawler fetches a single configured page, flattens it to
// plain text, and uploads a short snapshot. It is the catch-all adapter
// for sources without a dedicated crawler.
type CustomSiteCrawler struct {
	client   *fetcher.Client
	sink     sink.Sink
	url      string
	maxChars int
	logger   *slog.Logger
}

// NewCustomSite creates the generic single-page crawler.
func NewCustomSite(cfg config.CustomSite, maxChars int, client *fetcher.Client, snk sink.Sink, logger *slog.Logger) *CustomSiteCrawler {
	return &CustomSiteCrawler{
		client:   client,
		sink:     snk,
		url:      cfg.URL,
		maxChars: maxChars,
		logger:   logger.With("component", "custom_site_crawler"),
	}
}

func (c *CustomSiteCrawler) Name() string { return "Custom Site" }

// Run fetches the page, strips all markup to plain text, and uploads a
// truncated snapshot.
func (c *CustomSiteCrawler) Run(ctx context.Context) error {
	body, err := c.client.Get(ctx, c.url)
	if err != nil {
		return err
	}

	text := extract.StripHTML(string(body))
	snippet := summarize.Truncate(text, c.maxChars)
	content := fmt.Sprintf("# Fetched Content\n\nURL: %s\n\n%s", c.url, snippet)

	path := datePath(customSiteSlug)
	if err := c.sink.Upload(ctx, path, []byte(content), markdownContentType); err != nil {
		return err
	}

	c.logger.Info("page snapshot uploaded", "path", path, "url", c.url, "chars", len(snippet))
	return nil
}
